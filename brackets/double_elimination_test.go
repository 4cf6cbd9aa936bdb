package brackets

import (
	"context"
	"testing"
)

func TestDoubleEliminationLayout(t *testing.T) {
	gen := NewDoubleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// 3 winners matches, 2 losers matches, 1 grand final.
	if got := len(b.Matches); got != 6 {
		t.Fatalf("expected 6 matches, got %d", got)
	}

	l1m1 := mustGet(t, b, "L1M1")
	if l1m1.A.LoserOf != "W1M1" || l1m1.B.LoserOf != "W1M2" {
		t.Errorf("L1M1 should collect the round-1 losers, got A=%q B=%q",
			l1m1.A.LoserOf, l1m1.B.LoserOf)
	}
	l2m1 := mustGet(t, b, "L2M1")
	if l2m1.A.WinnerOf != "L1M1" || l2m1.B.LoserOf != "W2M1" {
		t.Errorf("L2M1 wiring wrong: A=%+v B=%+v", l2m1.A, l2m1.B)
	}
	gf := mustGet(t, b, "GF1M1")
	if gf.A.WinnerOf != "W2M1" || gf.B.WinnerOf != "L2M1" {
		t.Errorf("grand final wiring wrong: A=%+v B=%+v", gf.A, gf.B)
	}
	if b.FinalRound != gf.GlobalRound {
		t.Errorf("FinalRound = %d, want grand final round %d", b.FinalRound, gf.GlobalRound)
	}
}

func TestDoubleEliminationGlobalRoundOrder(t *testing.T) {
	gen := NewDoubleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := map[string]int{
		"W1M1": 1, "W1M2": 1,
		"L1M1": 2,
		"W2M1": 3,
		"L2M1": 4,
		"GF1M1": 5,
	}
	for uid, round := range want {
		m := mustGet(t, b, uid)
		if m.GlobalRound != round {
			t.Errorf("%s GlobalRound = %d, want %d", uid, m.GlobalRound, round)
		}
	}
}

func TestDoubleEliminationPlayThrough(t *testing.T) {
	gen := NewDoubleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Seed 1 and seed 3 win round 1; their losers meet in L1M1.
	for _, step := range []struct {
		uid    string
		winner int
	}{
		{"W1M1", 1}, // 1 over 4
		{"W1M2", 3}, // 3 over 2
	} {
		if err := b.ApplyResult(step.uid, step.winner); err != nil {
			t.Fatalf("apply %s: %v", step.uid, err)
		}
	}
	l1m1 := mustGet(t, b, "L1M1")
	a, bID, ok := l1m1.Occupants()
	if !ok || a != 4 || bID != 2 {
		t.Fatalf("L1M1 occupants = %d, %d (ok=%v), want 4, 2", a, bID, ok)
	}

	// Losing the winners final is not elimination; seed 3 drops to the
	// losers final and can still take the title.
	for _, step := range []struct {
		uid    string
		winner int
	}{
		{"W2M1", 1},
		{"L1M1", 2},
		{"L2M1", 3},
		{"GF1M1", 3},
	} {
		if err := b.ApplyResult(step.uid, step.winner); err != nil {
			t.Fatalf("apply %s: %v", step.uid, err)
		}
	}
	gf := mustGet(t, b, "GF1M1")
	if gf.WinnerID == nil || *gf.WinnerID != 3 {
		t.Fatalf("champion = %v, want 3", gf.WinnerID)
	}
	if len(b.Pending()) != 0 {
		t.Errorf("finished draw still has %d pending matches", len(b.Pending()))
	}
}

func TestDoubleEliminationTwoPlayers(t *testing.T) {
	gen := NewDoubleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// One winners match and a grand final rematch, no losers bracket.
	if got := len(b.Matches); got != 2 {
		t.Fatalf("expected 2 matches, got %d", got)
	}
	if err := b.ApplyResult("W1M1", 2); err != nil {
		t.Fatalf("apply W1M1: %v", err)
	}
	gf := mustGet(t, b, "GF1M1")
	a, bID, ok := gf.Occupants()
	if !ok || a != 2 || bID != 1 {
		t.Fatalf("grand final occupants = %d, %d (ok=%v), want 2, 1", a, bID, ok)
	}
}

func TestDoubleEliminationUnevenField(t *testing.T) {
	gen := NewDoubleEliminationGenerator()
	b, err := gen.Generate(context.Background(), GenerateParams{
		Roster: roster(1, 2, 3, 4, 5, 6),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Seeds 1 and 2 walk over round 1. Their byes have no loser, so
	// L1M1 and L1M2 each carry a bye slot and their real occupant
	// walks over once the adjacent winners match resolves.
	if err := b.ApplyResult("W1M2", 4); err != nil { // 4 over 5
		t.Fatalf("apply W1M2: %v", err)
	}
	l1m1 := mustGet(t, b, "L1M1")
	if l1m1.WinnerID == nil || *l1m1.WinnerID != 5 {
		t.Fatalf("L1M1 should walk 5 over the bye, got %+v", l1m1)
	}
	l2m1 := mustGet(t, b, "L2M1")
	if l2m1.A.PlayerID == nil || *l2m1.A.PlayerID != 5 {
		t.Errorf("walkover winner 5 not advanced into L2M1: %+v", l2m1.A)
	}
}

func TestSwissPairingFirstRound(t *testing.T) {
	field := []SwissPlayer{
		{PlayerID: 1, Seed: 1},
		{PlayerID: 2, Seed: 2},
		{PlayerID: 3, Seed: 3},
		{PlayerID: 4, Seed: 4},
	}
	matches := PairSwissRound(field, 1)
	if len(matches) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(matches))
	}
	if *matches[0].A.PlayerID != 1 || *matches[0].B.PlayerID != 2 {
		t.Errorf("S1M1 = %d vs %d, want 1 vs 2", *matches[0].A.PlayerID, *matches[0].B.PlayerID)
	}
	if *matches[1].A.PlayerID != 3 || *matches[1].B.PlayerID != 4 {
		t.Errorf("S1M2 = %d vs %d, want 3 vs 4", *matches[1].A.PlayerID, *matches[1].B.PlayerID)
	}
}

func TestSwissPairingGroupsByRecordAndSkipsRematches(t *testing.T) {
	// After two rounds: 1 is 2-0 and has faced 2 and 3, so round 3
	// must send the leader down to 4 despite the record gap.
	field := []SwissPlayer{
		{PlayerID: 1, Seed: 1, Wins: 2, Losses: 0, Faced: []int{2, 3}},
		{PlayerID: 2, Seed: 2, Wins: 1, Losses: 1, Faced: []int{1, 4}},
		{PlayerID: 3, Seed: 3, Wins: 1, Losses: 1, Faced: []int{4, 1}},
		{PlayerID: 4, Seed: 4, Wins: 0, Losses: 2, Faced: []int{3, 2}},
	}
	matches := PairSwissRound(field, 3)
	if len(matches) != 2 {
		t.Fatalf("expected 2 pairings, got %d", len(matches))
	}
	if *matches[0].A.PlayerID != 1 || *matches[0].B.PlayerID != 4 {
		t.Errorf("S3M1 = %d vs %d, want 1 vs 4", *matches[0].A.PlayerID, *matches[0].B.PlayerID)
	}
	if *matches[1].A.PlayerID != 2 || *matches[1].B.PlayerID != 3 {
		t.Errorf("S3M2 = %d vs %d, want 2 vs 3", *matches[1].A.PlayerID, *matches[1].B.PlayerID)
	}
}

func TestSwissPairingOddFieldGetsBye(t *testing.T) {
	field := []SwissPlayer{
		{PlayerID: 1, Seed: 1},
		{PlayerID: 2, Seed: 2},
		{PlayerID: 3, Seed: 3},
	}
	matches := PairSwissRound(field, 1)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	bye := matches[1]
	if !bye.IsBye || !bye.B.Bye || *bye.A.PlayerID != 3 {
		t.Errorf("lowest unpaired player should receive the bye, got %+v", bye)
	}
	// A bye must come out of pairing already resolved; nothing else
	// ever settles it, and an open bye would block the next round.
	if bye.WinnerID == nil || *bye.WinnerID != 3 {
		t.Fatalf("bye match %s should be resolved for its occupant, got winner %v", bye.UID, bye.WinnerID)
	}
	if bye.State() != StateResolved {
		t.Errorf("bye match state = %v, want resolved", bye.State())
	}
}

func TestSwissPairingSecondRoundAfterOddField(t *testing.T) {
	// Round 1 of a 3-player field: 1 beat 2, 3 took the bye. Round 2
	// pairs the two 1-0 players and hands the bye to the loser.
	field := []SwissPlayer{
		{PlayerID: 1, Seed: 1, Wins: 1, Faced: []int{2}},
		{PlayerID: 2, Seed: 2, Losses: 1, Faced: []int{1}},
		{PlayerID: 3, Seed: 3, Wins: 1},
	}
	matches := PairSwissRound(field, 2)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if *matches[0].A.PlayerID != 1 || *matches[0].B.PlayerID != 3 {
		t.Errorf("S2M1 = %d vs %d, want 1 vs 3", *matches[0].A.PlayerID, *matches[0].B.PlayerID)
	}
	bye := matches[1]
	if !bye.IsBye || *bye.A.PlayerID != 2 {
		t.Fatalf("round 2 bye should fall to player 2, got %+v", bye)
	}
	if bye.WinnerID == nil || *bye.WinnerID != 2 {
		t.Errorf("round 2 bye should be resolved for player 2, got winner %v", bye.WinnerID)
	}
}
