package standings

import (
	"math/rand"
	"reflect"
	"testing"
)

func roster4() []RosterPlayer {
	return []RosterPlayer{
		{PlayerID: 1, Seed: 1},
		{PlayerID: 2, Seed: 2},
		{PlayerID: 3, Seed: 3},
		{PlayerID: 4, Seed: 4},
	}
}

func TestRoundRobinPoints(t *testing.T) {
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 1, GamesP1: 12, GamesP2: 6},
		{P1ID: 1, P2ID: 3, WinnerID: 1, GamesP1: 13, GamesP2: 9},
		{P1ID: 2, P2ID: 3, WinnerID: 2, GamesP1: 12, GamesP2: 8},
	}
	entries := ComputeRoundRobin(roster4(), results)
	if len(entries) != 4 {
		t.Fatalf("got %d rows, want one per roster player", len(entries))
	}
	if entries[0].PlayerID != 1 || entries[0].Points != 4 {
		t.Fatalf("player 1 should lead with 4 points: %+v", entries[0])
	}
	if entries[1].PlayerID != 2 || entries[1].Points != 2 {
		t.Fatalf("player 2 should be second: %+v", entries[1])
	}
	// The untouched player ranks last with zero matches.
	last := entries[3]
	if last.PlayerID != 4 || last.MatchesPlayed != 0 || last.Rank != 4 {
		t.Fatalf("idle player must rank last: %+v", last)
	}
}

func TestRoundRobinCircularTie(t *testing.T) {
	// A beats B, B beats C, C beats A: all 1-1, tie broken by games
	// won since head-to-head is also circular.
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 1, GamesP1: 12, GamesP2: 4},
		{P1ID: 2, P2ID: 3, WinnerID: 2, GamesP1: 12, GamesP2: 8},
		{P1ID: 3, P2ID: 1, WinnerID: 3, GamesP1: 13, GamesP2: 11},
	}
	entries := ComputeRoundRobin(roster4(), results)

	for _, e := range entries[:3] {
		if e.Wins != 1 || e.Losses != 1 {
			t.Fatalf("expected 1-1 records, got %+v", e)
		}
	}
	// Games won: p1=23, p2=16, p3=21.
	wantOrder := []int{1, 3, 2, 4}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Fatalf("position %d: got player %d, want %d (%+v)", i, entries[i].PlayerID, want, entries)
		}
	}
	if entries[3].MatchesPlayed != 0 {
		t.Fatalf("4th player should be untouched: %+v", entries[3])
	}
}

func TestRoundRobinHeadToHeadBreaksTie(t *testing.T) {
	// Players 1 and 2 both finish 2-1; player 2 won the direct match
	// and must rank first despite fewer games overall.
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 2, GamesP1: 3, GamesP2: 12},
		{P1ID: 1, P2ID: 3, WinnerID: 1, GamesP1: 12, GamesP2: 0},
		{P1ID: 1, P2ID: 4, WinnerID: 1, GamesP1: 12, GamesP2: 0},
		{P1ID: 2, P2ID: 3, WinnerID: 2, GamesP1: 12, GamesP2: 10},
		{P1ID: 2, P2ID: 4, WinnerID: 4, GamesP1: 8, GamesP2: 12},
	}
	entries := ComputeRoundRobin(roster4(), results)
	if entries[0].PlayerID != 2 {
		t.Fatalf("head-to-head winner must rank first, got %+v", entries)
	}
	if entries[1].PlayerID != 1 {
		t.Fatalf("expected player 1 second, got %+v", entries)
	}
}

func TestRoundRobinOrderIndependent(t *testing.T) {
	results := []MatchResult{
		{P1ID: 1, P2ID: 2, WinnerID: 1, GamesP1: 12, GamesP2: 4},
		{P1ID: 2, P2ID: 3, WinnerID: 2, GamesP1: 12, GamesP2: 8},
		{P1ID: 3, P2ID: 1, WinnerID: 3, GamesP1: 13, GamesP2: 11},
		{P1ID: 1, P2ID: 4, WinnerID: 1, GamesP1: 12, GamesP2: 2},
		{P1ID: 2, P2ID: 4, WinnerID: 2, GamesP1: 12, GamesP2: 5},
	}
	want := ComputeRoundRobin(roster4(), results)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		shuffled := make([]MatchResult, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := ComputeRoundRobin(roster4(), shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: shuffled input changed standings:\n got %+v\nwant %+v", trial, got, want)
		}
	}
}

func TestRoundRobinIgnoresOffRosterMatches(t *testing.T) {
	results := []MatchResult{
		{P1ID: 1, P2ID: 99, WinnerID: 99, GamesP1: 2, GamesP2: 12},
	}
	entries := ComputeRoundRobin(roster4(), results)
	for _, e := range entries {
		if e.MatchesPlayed != 0 {
			t.Fatalf("off-roster match leaked into standings: %+v", e)
		}
	}
}
