package scoring

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, raw string) []SetScore {
	t.Helper()
	sets, err := ParseSets(raw)
	if err != nil {
		t.Fatal(err)
	}
	return sets
}

func TestResolveStraightSets(t *testing.T) {
	out, err := Resolve(mustParse(t, "6-4, 7-5"), TerminalNormal, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || out.Winner != SideA {
		t.Fatalf("expected completed win by A, got %+v", out)
	}
}

func TestResolveThreeSets(t *testing.T) {
	out, err := Resolve(mustParse(t, "3-6, 6-3, 2-6"), TerminalNormal, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || out.Winner != SideB {
		t.Fatalf("expected completed win by B, got %+v", out)
	}
	if out.SetsA != 1 || out.SetsB != 2 {
		t.Fatalf("set tally wrong: %+v", out)
	}
}

func TestResolveIncomplete(t *testing.T) {
	out, err := Resolve(mustParse(t, "6-4"), TerminalNormal, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed {
		t.Fatalf("one set cannot complete a best of 3: %+v", out)
	}
}

func TestResolveNoSets(t *testing.T) {
	out, err := Resolve(nil, TerminalNormal, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed {
		t.Fatal("a match with no sets is never completed")
	}
}

func TestResolveRetirement(t *testing.T) {
	// The retiring side loses regardless of the partial score.
	atFault := SideB
	out, err := Resolve(mustParse(t, "2-1"), TerminalRetired, &atFault, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || out.Winner != SideA {
		t.Fatalf("retirement by B must award A, got %+v", out)
	}

	atFault = SideA
	out, err = Resolve(nil, TerminalDefaulted, &atFault, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || out.Winner != SideB {
		t.Fatalf("default by A must award B, got %+v", out)
	}
}

func TestResolveRetirementNeedsSide(t *testing.T) {
	if _, err := Resolve(nil, TerminalRetired, nil, 3); !errors.Is(err, ErrFaultSideNeeded) {
		t.Fatalf("got %v, want ErrFaultSideNeeded", err)
	}
}

func TestResolveBestOfFive(t *testing.T) {
	out, err := Resolve(mustParse(t, "6-4, 4-6, 6-4, 4-6, 7-5"), TerminalNormal, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Completed || out.Winner != SideA {
		t.Fatalf("expected 3-2 win by A, got %+v", out)
	}

	out, err = Resolve(mustParse(t, "6-4, 4-6"), TerminalNormal, nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if out.Completed {
		t.Fatalf("1-1 in a best of 5 is incomplete: %+v", out)
	}
}

func TestResolveRejectsExtraSets(t *testing.T) {
	if _, err := Resolve(mustParse(t, "6-4, 6-4, 6-4"), TerminalNormal, nil, 3); !errors.Is(err, ErrExtraSets) {
		t.Fatalf("got %v, want ErrExtraSets", err)
	}
}

func TestResolveRejectsBadBestOf(t *testing.T) {
	if _, err := Resolve(nil, TerminalNormal, nil, 4); !errors.Is(err, ErrBadBestOf) {
		t.Fatalf("got %v, want ErrBadBestOf", err)
	}
	// Zero means "use the default".
	if _, err := Resolve(nil, TerminalNormal, nil, 0); err != nil {
		t.Fatal(err)
	}
}

func TestGamesWon(t *testing.T) {
	a, b := GamesWon(mustParse(t, "6-4, 3-6, 7-6(2)"))
	if a != 16 || b != 16 {
		t.Fatalf("got %d-%d, want 16-16", a, b)
	}
}
