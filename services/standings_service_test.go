package services

import (
	"errors"
	"testing"

	"github.com/michae1michae1/tennis-backend/models"
)

func entry(playerID, seed int) models.RosterEntry {
	return models.RosterEntry{
		PlayerID: playerID,
		Seed:     seed,
		Status:   models.RosterRegistered,
	}
}

func completedMatch(id, p1, p2, winner int, score string, round int) models.Match {
	m := models.Match{
		ID:       id,
		P1ID:     &p1,
		P2ID:     &p2,
		WinnerID: &winner,
		Status:   models.MatchCompleted,
		Round:    &round,
	}
	if score != "" {
		m.Score = &score
	}
	return m
}

func TestComputePhaseStandingsRoundRobin(t *testing.T) {
	phase := &models.Phase{ID: 1, Format: models.FormatRoundRobin}
	entries := []models.RosterEntry{entry(10, 1), entry(20, 2), entry(30, 3)}
	matches := []models.Match{
		completedMatch(1, 10, 20, 10, "6-4, 6-4", 1),
		completedMatch(2, 10, 30, 10, "6-2, 6-2", 2),
		completedMatch(3, 20, 30, 20, "7-6(4), 6-3", 3),
	}

	rows, err := computePhaseStandings(phase, entries, matches)
	if err != nil {
		t.Fatalf("computePhaseStandings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].PlayerID != 10 || rows[0].Rank != 1 {
		t.Fatalf("expected player 10 first, got %+v", rows[0])
	}
	if rows[0].Points != 4 {
		t.Errorf("two wins should score 4 points, got %d", rows[0].Points)
	}
	if rows[1].PlayerID != 20 || rows[2].PlayerID != 30 {
		t.Errorf("expected order 10,20,30, got %d,%d,%d",
			rows[0].PlayerID, rows[1].PlayerID, rows[2].PlayerID)
	}
}

func TestComputePhaseStandingsSkipsUnfinishedAndStrangers(t *testing.T) {
	phase := &models.Phase{ID: 1, Format: models.FormatRoundRobin}
	entries := []models.RosterEntry{entry(10, 1), entry(20, 2)}

	p1, p2 := 10, 20
	pending := models.Match{ID: 5, P1ID: &p1, P2ID: &p2, Status: models.MatchScheduled}
	withdrawn := completedMatch(6, 10, 99, 99, "6-0, 6-0", 1)
	matches := []models.Match{pending, withdrawn, completedMatch(7, 10, 20, 20, "6-3, 6-3", 2)}

	rows, err := computePhaseStandings(phase, entries, matches)
	if err != nil {
		t.Fatalf("computePhaseStandings: %v", err)
	}
	if rows[0].PlayerID != 20 {
		t.Fatalf("expected player 20 on top, got %d", rows[0].PlayerID)
	}
	if rows[1].MatchesPlayed != 1 {
		t.Errorf("player 10 should count only the completed in-roster match, got %d played", rows[1].MatchesPlayed)
	}
}

func TestComputePhaseStandingsElimination(t *testing.T) {
	phase := &models.Phase{ID: 2, Format: models.FormatSingleElimination}
	entries := []models.RosterEntry{entry(1, 1), entry(2, 2), entry(3, 3), entry(4, 4)}
	matches := []models.Match{
		completedMatch(1, 1, 4, 1, "6-1, 6-1", 1),
		completedMatch(2, 2, 3, 3, "4-6, 6-4, 6-4", 1),
		completedMatch(3, 1, 3, 1, "6-4, 6-4", 2),
	}

	rows, err := computePhaseStandings(phase, entries, matches)
	if err != nil {
		t.Fatalf("computePhaseStandings: %v", err)
	}
	if rows[0].PlayerID != 1 || rows[0].Rank != 1 {
		t.Fatalf("champion should rank first, got %+v", rows[0])
	}
	if rows[1].PlayerID != 3 || rows[1].Rank != 2 {
		t.Fatalf("finalist should rank second, got %+v", rows[1])
	}
	// Both first-round losers share rank 3.
	if rows[2].Rank != 3 || rows[3].Rank != 3 {
		t.Errorf("semifinal losers should co-rank at 3, got %d and %d", rows[2].Rank, rows[3].Rank)
	}
}

func TestComputePhaseStandingsSwissCountsByeAsWin(t *testing.T) {
	phase := &models.Phase{ID: 5, Format: models.FormatSwiss}
	entries := []models.RosterEntry{entry(1, 1), entry(2, 2), entry(3, 3)}

	// Round 1 of an odd field: 1 beat 2, 3 drew the bye. The bye row
	// is persisted completed with a winner and no second occupant.
	byeWinner := 3
	p1 := 3
	round := 1
	bye := models.Match{
		ID:       2,
		P1ID:     &p1,
		WinnerID: &byeWinner,
		Status:   models.MatchCompleted,
		Round:    &round,
	}
	matches := []models.Match{
		completedMatch(1, 1, 2, 1, "6-0, 6-0", 1),
		bye,
	}

	rows, err := computePhaseStandings(phase, entries, matches)
	if err != nil {
		t.Fatalf("computePhaseStandings: %v", err)
	}
	byPlayer := make(map[int]int, len(rows))
	for i, row := range rows {
		byPlayer[row.PlayerID] = i
	}
	got := rows[byPlayer[3]]
	if got.Wins != 1 || got.Losses != 0 || got.MatchesPlayed != 1 {
		t.Fatalf("bye recipient should stand, 1-0, got %+v", got)
	}
	if got.GamesWon != 0 {
		t.Errorf("a walkover should contribute no games, got %d", got.GamesWon)
	}
	if loser := rows[byPlayer[2]]; loser.Rank != 3 {
		t.Errorf("the round's loser should rank last, got rank %d", loser.Rank)
	}
}

func TestComputePhaseStandingsMalformedScore(t *testing.T) {
	phase := &models.Phase{ID: 3, Format: models.FormatRoundRobin}
	entries := []models.RosterEntry{entry(10, 1), entry(20, 2)}
	matches := []models.Match{completedMatch(1, 10, 20, 10, "6:4 6:4", 1)}

	if _, err := computePhaseStandings(phase, entries, matches); err == nil {
		t.Fatal("expected error for malformed stored score")
	}
}

func TestComputePhaseStandingsUnknownFormat(t *testing.T) {
	phase := &models.Phase{ID: 4, Format: models.FormatCustom}
	_, err := computePhaseStandings(phase, nil, nil)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestEliminationRounds(t *testing.T) {
	cases := map[int]int{2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 16: 4}
	for n, want := range cases {
		if got := eliminationRounds(n); got != want {
			t.Errorf("eliminationRounds(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestGroupCount(t *testing.T) {
	cases := map[int]int{3: 1, 4: 1, 5: 2, 8: 2, 9: 3, 16: 4}
	for n, want := range cases {
		if got := groupCount(n); got != want {
			t.Errorf("groupCount(%d) = %d, want %d", n, got, want)
		}
	}
}
