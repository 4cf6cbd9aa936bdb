package standings

import "testing"

func TestEliminationRanksByRoundReached(t *testing.T) {
	roster := ladderRoster(4)
	// Semis: 1 beats 4, 3 beats 2. Final: 1 beats 3.
	results := []MatchResult{
		{P1ID: 1, P2ID: 4, WinnerID: 1, Round: 1},
		{P1ID: 3, P2ID: 2, WinnerID: 3, Round: 1},
		{P1ID: 1, P2ID: 3, WinnerID: 1, Round: 2},
	}
	entries := ComputeElimination(roster, results, 2)

	if entries[0].PlayerID != 1 || entries[0].Rank != 1 {
		t.Fatalf("champion must rank first: %+v", entries[0])
	}
	if entries[1].PlayerID != 3 || entries[1].Rank != 2 {
		t.Fatalf("runner-up must rank second: %+v", entries[1])
	}
	// Both semifinal losers share rank 3.
	if entries[2].Rank != 3 || entries[3].Rank != 3 {
		t.Fatalf("semifinal losers must co-rank: %+v", entries[2:])
	}
	if entries[2].PlayerID != 2 {
		t.Fatalf("co-ranked group must order by seed: %+v", entries[2:])
	}
}

func TestEliminationBeforeFinal(t *testing.T) {
	roster := ladderRoster(4)
	results := []MatchResult{
		{P1ID: 1, P2ID: 4, WinnerID: 1, Round: 1},
	}
	entries := ComputeElimination(roster, results, 2)
	// Nobody has won the final, so no standalone champion yet; the
	// played pair outranks the idle pair.
	if entries[0].Rank != 1 || entries[1].Rank != 1 {
		t.Fatalf("players in round 1 should co-rank before the final: %+v", entries)
	}
	if entries[2].Rank != 3 {
		t.Fatalf("idle players rank behind: %+v", entries[2])
	}
}

func TestSwissStandings(t *testing.T) {
	roster := ladderRoster(4)
	results := []MatchResult{
		{P1ID: 1, P2ID: 4, WinnerID: 1, Round: 1},
		{P1ID: 2, P2ID: 3, WinnerID: 2, Round: 1},
		{P1ID: 1, P2ID: 2, WinnerID: 1, Round: 2},
		{P1ID: 3, P2ID: 4, WinnerID: 3, Round: 2},
	}
	entries := ComputeSwiss(roster, results)
	if entries[0].PlayerID != 1 {
		t.Fatalf("undefeated player must lead: %+v", entries)
	}
	// 2 and 3 are both 1-1; 2 faced stronger opposition (1 and 3,
	// combined diff +2) than 3 (2 and 4, combined diff -2).
	if entries[1].PlayerID != 2 || entries[2].PlayerID != 3 {
		t.Fatalf("buchholz tie-break failed: %+v", entries)
	}
	if entries[3].PlayerID != 4 || entries[3].Rank != 4 {
		t.Fatalf("winless player must rank last: %+v", entries[3])
	}
}

func TestGroupStage(t *testing.T) {
	roster := ladderRoster(4)
	// Two groups by snake seeding: {1,4} and {2,3}.
	results := []MatchResult{
		{P1ID: 1, P2ID: 4, WinnerID: 4, GamesP1: 5, GamesP2: 12},
		{P1ID: 2, P2ID: 3, WinnerID: 2, GamesP1: 12, GamesP2: 7},
	}
	entries := ComputeGroupStage(roster, results, 2)
	if len(entries) != 4 {
		t.Fatalf("got %d rows, want 4", len(entries))
	}
	// Group winners first (4 from group A, 2 from group B), then the
	// group losers.
	if entries[0].PlayerID != 4 || entries[1].PlayerID != 2 {
		t.Fatalf("group winners must lead: %+v", entries)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Fatalf("interleaved ranks wrong: %+v", entries[:2])
	}
}

func TestSnakeGroups(t *testing.T) {
	groups := SnakeGroups(ladderRoster(6), 2)
	// Snake over seeds 1..6 with 2 groups: A={1,4,5}, B={2,3,6}.
	wantA := []int{1, 4, 5}
	for i, p := range groups[0] {
		if p.PlayerID != wantA[i] {
			t.Fatalf("group A is %+v, want players %v", groups[0], wantA)
		}
	}
	wantB := []int{2, 3, 6}
	for i, p := range groups[1] {
		if p.PlayerID != wantB[i] {
			t.Fatalf("group B is %+v, want players %v", groups[1], wantB)
		}
	}
}
