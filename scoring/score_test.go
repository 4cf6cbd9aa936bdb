package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestParseSets(t *testing.T) {
	sets, err := ParseSets("6-4, 7-5")
	if err != nil {
		t.Fatal(err)
	}
	want := []SetScore{{GamesA: 6, GamesB: 4}, {GamesA: 7, GamesB: 5}}
	if !reflect.DeepEqual(sets, want) {
		t.Fatalf("got %v, want %v", sets, want)
	}
}

func TestParseSetsWithTiebreak(t *testing.T) {
	sets, err := ParseSets("7-6(5), 3-6, 6-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(sets))
	}
	if sets[0].Tiebreak == nil || *sets[0].Tiebreak != 5 {
		t.Errorf("first set tiebreak not parsed: %v", sets[0])
	}
	if sets[1].Tiebreak != nil {
		t.Errorf("second set should have no tiebreak: %v", sets[1])
	}
}

func TestParseSetsNotPlayed(t *testing.T) {
	for _, raw := range []string{NotPlayed, "not played", ""} {
		sets, err := ParseSets(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if len(sets) != 0 {
			t.Fatalf("%q: expected no sets, got %v", raw, sets)
		}
	}
}

func TestParseSetsRejectsMalformed(t *testing.T) {
	cases := []struct {
		raw string
		err error
	}{
		{"8-4", ErrGamesOutOfRange},
		{"6--1", ErrGamesOutOfRange},
		{"6-6", ErrTiedSet},
		{"6-4(3)", ErrTiebreakNotValid},
		{"7-6(x)", ErrBadTiebreak},
		{"six-four", ErrMalformedScore},
		{"64", ErrMalformedScore},
		{"7-6(5", ErrMalformedScore},
	}
	for _, c := range cases {
		_, err := ParseSets(c.raw)
		if err == nil {
			t.Errorf("%q: expected error", c.raw)
			continue
		}
		if !errors.Is(err, c.err) {
			t.Errorf("%q: got %v, want %v", c.raw, err, c.err)
		}
	}
}

func TestFormatSetsRoundTrip(t *testing.T) {
	cases := [][]SetScore{
		{{GamesA: 6, GamesB: 4}, {GamesA: 7, GamesB: 5}},
		{{GamesA: 7, GamesB: 6, Tiebreak: intPtr(4)}, {GamesA: 0, GamesB: 6}, {GamesA: 6, GamesB: 3}},
		{{GamesA: 2, GamesB: 1}},
		nil,
	}
	for _, sets := range cases {
		raw := FormatSets(sets)
		reparsed, err := ParseSets(raw)
		if err != nil {
			t.Fatalf("%q did not re-parse: %v", raw, err)
		}
		if len(sets) == 0 {
			if raw != NotPlayed || len(reparsed) != 0 {
				t.Fatalf("empty score formatted as %q", raw)
			}
			continue
		}
		if !reflect.DeepEqual(reparsed, sets) {
			t.Fatalf("round trip changed %v into %v (via %q)", sets, reparsed, raw)
		}
	}
}

func TestSetWinner(t *testing.T) {
	w, err := SetScore{GamesA: 3, GamesB: 6}.Winner()
	if err != nil {
		t.Fatal(err)
	}
	if w != SideB {
		t.Fatalf("got %v, want side B", w)
	}

	if _, err := (SetScore{GamesA: 5, GamesB: 5}).Winner(); !errors.Is(err, ErrTiedSet) {
		t.Fatalf("tied set must be rejected, got %v", err)
	}
}
