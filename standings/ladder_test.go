package standings

import "testing"

func ladderRoster(n int) []RosterPlayer {
	roster := make([]RosterPlayer, n)
	for i := range roster {
		roster[i] = RosterPlayer{PlayerID: i + 1, Seed: i + 1}
	}
	return roster
}

func ladderOrder(entries []Entry) []int {
	order := make([]int, len(entries))
	for i, e := range entries {
		order[i] = e.PlayerID
	}
	return order
}

func TestLadderChallengeWinMovesUp(t *testing.T) {
	// Rank 5 beats rank 2: winner takes position 2, players 2-4 shift
	// down one.
	results := []MatchResult{
		{P1ID: 5, P2ID: 2, WinnerID: 5, GamesP1: 12, GamesP2: 7},
	}
	entries := ComputeLadder(ladderRoster(5), results)
	want := []int{1, 5, 2, 3, 4}
	got := ladderOrder(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ladder order %v, want %v", got, want)
		}
	}
	if entries[1].Rank != 2 || entries[1].Wins != 1 {
		t.Fatalf("challenger row wrong: %+v", entries[1])
	}
}

func TestLadderDefendedChallengeChangesNothing(t *testing.T) {
	results := []MatchResult{
		{P1ID: 5, P2ID: 2, WinnerID: 2, GamesP1: 3, GamesP2: 12},
	}
	entries := ComputeLadder(ladderRoster(5), results)
	want := []int{1, 2, 3, 4, 5}
	got := ladderOrder(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("defended challenge must not move ranks: %v", got)
		}
	}
	if entries[4].Losses != 1 {
		t.Fatalf("challenger loss not recorded: %+v", entries[4])
	}
}

func TestLadderSequentialChallenges(t *testing.T) {
	// 4 beats 1 (takes the top), then 2 beats 4 at the new order.
	results := []MatchResult{
		{P1ID: 4, P2ID: 1, WinnerID: 4, GamesP1: 12, GamesP2: 9},
		{P1ID: 2, P2ID: 4, WinnerID: 2, GamesP1: 12, GamesP2: 10},
	}
	entries := ComputeLadder(ladderRoster(4), results)
	want := []int{2, 4, 1, 3}
	got := ladderOrder(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ladder order %v, want %v", got, want)
		}
	}
}

func TestLadderStartsFromSeedOrder(t *testing.T) {
	roster := []RosterPlayer{
		{PlayerID: 10, Seed: 3},
		{PlayerID: 20, Seed: 1},
		{PlayerID: 30, Seed: 2},
	}
	entries := ComputeLadder(roster, nil)
	want := []int{20, 30, 10}
	got := ladderOrder(entries)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("initial ladder must follow seeds: %v", got)
		}
	}
}
