package standings

import "testing"

func TestComputeSwissByeIsAWalkoverWin(t *testing.T) {
	roster := []RosterPlayer{
		{PlayerID: 1, Seed: 1},
		{PlayerID: 2, Seed: 2},
		{PlayerID: 3, Seed: 3},
	}
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 1, GamesP1: 12, GamesP2: 4, Round: 1},
		{P1ID: 3, WinnerID: 3, Round: 1, Bye: true},
	}

	entries := ComputeSwiss(roster, results)
	var byeRow Entry
	for _, e := range entries {
		if e.PlayerID == 3 {
			byeRow = e
		}
	}
	if byeRow.Wins != 1 || byeRow.Losses != 0 || byeRow.MatchesPlayed != 1 {
		t.Fatalf("bye recipient should stand 1-0, got %+v", byeRow)
	}
	if byeRow.GamesWon != 0 {
		t.Errorf("a bye contributes no games, got %d", byeRow.GamesWon)
	}
}

func TestComputeSwissBuchholzTieBreak(t *testing.T) {
	roster := []RosterPlayer{
		{PlayerID: 1, Seed: 1},
		{PlayerID: 2, Seed: 2},
		{PlayerID: 3, Seed: 3},
		{PlayerID: 4, Seed: 4},
	}
	// Two rounds leaving 1 and 4 both at 1-1, separated only by the
	// strength of their opposition and then seed.
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 2, Round: 1},
		{P1ID: 3, P2ID: 4, WinnerID: 4, Round: 1},
		{P1ID: 1, P2ID: 3, WinnerID: 1, Round: 2},
		{P1ID: 2, P2ID: 4, WinnerID: 2, Round: 2},
	}

	entries := ComputeSwiss(roster, results)
	if entries[0].PlayerID != 2 {
		t.Fatalf("2-0 player should lead, got %d", entries[0].PlayerID)
	}
	// Both 1 and 4 are 1-1; 1 faced the 2-0 leader and the 0-2
	// tail (sum 0), 4 faced the same pair, so seed decides.
	if entries[1].PlayerID != 1 || entries[2].PlayerID != 4 {
		t.Errorf("expected 1 ahead of 4 on seed, got %d then %d",
			entries[1].PlayerID, entries[2].PlayerID)
	}
	if entries[3].PlayerID != 3 {
		t.Errorf("0-2 player should be last, got %d", entries[3].PlayerID)
	}
}
