package brackets

import (
	"context"
	"errors"
	"testing"
)

func roster(ids ...int) []Seed {
	seeds := make([]Seed, len(ids))
	for i, id := range ids {
		seeds[i] = Seed{PlayerID: id, Seed: i + 1}
	}
	return seeds
}

func mustGet(t *testing.T, b *Bracket, uid string) *Match {
	t.Helper()
	m, ok := b.Get(uid)
	if !ok {
		t.Fatalf("match %s not found", uid)
	}
	return m
}

func TestSeedOrder(t *testing.T) {
	got := seedOrder(8)
	want := []int{1, 8, 4, 5, 2, 7, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("seedOrder(8) length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seedOrder(8)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBracketSize(t *testing.T) {
	cases := []struct{ n, want int }{
		{2, 2}, {3, 4}, {5, 8}, {8, 8}, {9, 16},
	}
	for _, c := range cases {
		if got := bracketSize(c.n); got != c.want {
			t.Errorf("bracketSize(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestSingleEliminationTooFewPlayers(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	_, err := gen.Generate(context.Background(), GenerateParams{Roster: roster(101)})
	if !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("expected ErrTooFewPlayers, got %v", err)
	}
}

func TestSingleEliminationByesAdvanceTopSeeds(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(101, 102, 103, 104, 105, 106),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := len(b.Matches); got != 7 {
		t.Fatalf("expected 7 matches for a size-8 draw, got %d", got)
	}
	if b.FinalRound != 3 {
		t.Fatalf("FinalRound = %d, want 3", b.FinalRound)
	}

	// Seeds 1 and 2 draw the byes and are already through to round 2.
	r1m1 := mustGet(t, b, "R1M1")
	if !r1m1.IsBye || r1m1.WinnerID == nil || *r1m1.WinnerID != 101 {
		t.Errorf("R1M1 should be a resolved bye for 101, got %+v", r1m1)
	}
	r1m3 := mustGet(t, b, "R1M3")
	if !r1m3.IsBye || r1m3.WinnerID == nil || *r1m3.WinnerID != 102 {
		t.Errorf("R1M3 should be a resolved bye for 102, got %+v", r1m3)
	}
	r2m1 := mustGet(t, b, "R2M1")
	if r2m1.A.PlayerID == nil || *r2m1.A.PlayerID != 101 {
		t.Errorf("bye winner 101 not advanced into R2M1: %+v", r2m1.A)
	}

	// Only the two real round-1 matches are playable.
	pending := b.Pending()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending matches, got %d", len(pending))
	}
	if pending[0].UID != "R1M2" || pending[1].UID != "R1M4" {
		t.Errorf("pending = %s, %s; want R1M2, R1M4", pending[0].UID, pending[1].UID)
	}
}

func TestApplyResultStateMachine(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(101, 102, 103, 104, 105, 106),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := b.ApplyResult("R9M9", 101); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("expected ErrUnknownMatch, got %v", err)
	}
	// R2M1 still waits on R1M2.
	if err := b.ApplyResult("R2M1", 101); !errors.Is(err, ErrSlotNotPending) {
		t.Errorf("expected ErrSlotNotPending, got %v", err)
	}
	if err := b.ApplyResult("R1M2", 999); !errors.Is(err, ErrNotInMatch) {
		t.Errorf("expected ErrNotInMatch, got %v", err)
	}

	if err := b.ApplyResult("R1M2", 104); err != nil {
		t.Fatalf("apply R1M2: %v", err)
	}
	// A resolved match never changes its winner.
	if err := b.ApplyResult("R1M2", 105); !errors.Is(err, ErrAlreadyResolved) {
		t.Errorf("expected ErrAlreadyResolved, got %v", err)
	}

	r2m1 := mustGet(t, b, "R2M1")
	if r2m1.State() != StatePending {
		t.Fatalf("R2M1 state = %s, want pending", r2m1.State())
	}
	a, bID, ok := r2m1.Occupants()
	if !ok || a != 101 || bID != 104 {
		t.Errorf("R2M1 occupants = %d, %d (ok=%v), want 101, 104", a, bID, ok)
	}
}

func TestSingleEliminationPlayThrough(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, step := range []struct {
		uid    string
		winner int
	}{
		{"R1M1", 1}, // 1 vs 4
		{"R1M2", 3}, // 2 vs 3, upset
		{"R2M1", 3},
	} {
		if err := b.ApplyResult(step.uid, step.winner); err != nil {
			t.Fatalf("apply %s: %v", step.uid, err)
		}
	}

	final := mustGet(t, b, "R2M1")
	if final.WinnerID == nil || *final.WinnerID != 3 {
		t.Fatalf("champion = %v, want 3", final.WinnerID)
	}
	if len(b.Pending()) != 0 {
		t.Errorf("finished draw still has %d pending matches", len(b.Pending()))
	}
}

func TestReplayRebuildsBracket(t *testing.T) {
	gen := NewSingleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Replay order in the map is irrelevant; dependency order rules.
	winners := map[string]int{
		"R2M1": 2,
		"R1M2": 2,
		"R1M1": 4,
	}
	if err := b.Replay(winners); err != nil {
		t.Fatalf("replay: %v", err)
	}
	final := mustGet(t, b, "R2M1")
	if final.WinnerID == nil || *final.WinnerID != 2 {
		t.Fatalf("replayed champion = %v, want 2", final.WinnerID)
	}
}

func TestRoundRobinGenerator(t *testing.T) {
	gen := NewRoundRobinGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := len(b.Matches); got != 6 {
		t.Fatalf("expected 6 pairings for 4 players, got %d", got)
	}
	if got := len(b.Pending()); got != 6 {
		t.Errorf("all pairings should be playable, got %d pending", got)
	}

	seen := make(map[[2]int]bool)
	for _, m := range b.Matches {
		a, bID, ok := m.Occupants()
		if !ok {
			t.Fatalf("pairing %s has an empty slot", m.UID)
		}
		lo, hi := a, bID
		if lo > hi {
			lo, hi = hi, lo
		}
		seen[[2]int{lo, hi}] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct pairings, got %d", len(seen))
	}
}

func TestRoundRobinDoubleLegSwapsSides(t *testing.T) {
	gen := NewRoundRobinGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster:    roster(1, 2, 3),
		DoubleLeg: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := len(b.Matches); got != 6 {
		t.Fatalf("expected 6 matches across two legs, got %d", got)
	}

	leg1 := mustGet(t, b, "RRM1")
	leg2 := mustGet(t, b, "RRM1_L2")
	if *leg1.A.PlayerID != *leg2.B.PlayerID || *leg1.B.PlayerID != *leg2.A.PlayerID {
		t.Errorf("second leg should swap sides: leg1 %d-%d, leg2 %d-%d",
			*leg1.A.PlayerID, *leg1.B.PlayerID, *leg2.A.PlayerID, *leg2.B.PlayerID)
	}
}
