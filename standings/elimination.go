package standings

import "sort"

// ComputeElimination derives standings from bracket position: players
// are ranked by the furthest round they reached, and players knocked
// out in the same round share a rank. finalRound is the bracket's last
// round number; only winning that round makes a standalone champion
// (pass 0 to derive it from the results, for a finished bracket).
// There is no points model for elimination play.
func ComputeElimination(roster []RosterPlayer, results []MatchResult, finalRound int) []Entry {
	records := tally(roster, results)

	if finalRound <= 0 {
		for _, r := range results {
			if r.Round > finalRound {
				finalRound = r.Round
			}
		}
	}

	// reached = the last round a player stood in, plus one for winning
	// the final so the champion outranks the runner-up.
	reached := make(map[int]int, len(roster))
	for _, r := range results {
		if _, ok := records[r.P1ID]; !ok {
			continue
		}
		if _, ok := records[r.P2ID]; !ok {
			continue
		}
		if r.Round > reached[r.P1ID] {
			reached[r.P1ID] = r.Round
		}
		if r.Round > reached[r.P2ID] {
			reached[r.P2ID] = r.Round
		}
		if r.Round == finalRound && r.Round >= reached[r.WinnerID] {
			reached[r.WinnerID] = r.Round + 1
		}
	}

	entries := make([]Entry, 0, len(roster))
	for _, p := range roster {
		rec := records[p.PlayerID]
		entries = append(entries, Entry{
			PlayerID:      p.PlayerID,
			Wins:          rec.wins,
			Losses:        rec.losses,
			MatchesPlayed: rec.wins + rec.losses,
			GamesWon:      rec.games,
		})
	}

	seedOf := make(map[int]int, len(roster))
	for _, p := range roster {
		seedOf[p.PlayerID] = p.Seed
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if reached[a.PlayerID] != reached[b.PlayerID] {
			return reached[a.PlayerID] > reached[b.PlayerID]
		}
		return seedOf[a.PlayerID] < seedOf[b.PlayerID]
	})

	// Standard competition ranking over the reached round.
	for i := range entries {
		if i > 0 && reached[entries[i].PlayerID] == reached[entries[i-1].PlayerID] {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}
