package standings

import "sort"

// ComputeLadder replays challenge results over the ladder. The
// starting order is the roster's seed order; a win by a lower-ranked
// challenger moves the winner into the loser's position and shifts
// everyone between down one place, a win by the higher-ranked player
// leaves the order unchanged. Results are replayed in the order given;
// the ladder is the one view where that order is meaningful, and the
// caller passes challenges in the order they were issued.
func ComputeLadder(roster []RosterPlayer, results []MatchResult) []Entry {
	ordered := make([]RosterPlayer, len(roster))
	copy(ordered, roster)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seed < ordered[j].Seed
	})

	ladder := make([]int, len(ordered))
	for i, p := range ordered {
		ladder[i] = p.PlayerID
	}

	records := tally(roster, results)

	for _, r := range results {
		if _, ok := records[r.P1ID]; !ok {
			continue
		}
		if _, ok := records[r.P2ID]; !ok {
			continue
		}
		loserID := r.P1ID
		if r.WinnerID == r.P1ID {
			loserID = r.P2ID
		}
		winnerPos := indexOf(ladder, r.WinnerID)
		loserPos := indexOf(ladder, loserID)
		if winnerPos < 0 || loserPos < 0 || winnerPos < loserPos {
			// Higher-ranked player defended their spot.
			continue
		}
		// Winner takes the loser's rung, the span in between slides down.
		copy(ladder[loserPos+1:winnerPos+1], ladder[loserPos:winnerPos])
		ladder[loserPos] = r.WinnerID
	}

	entries := make([]Entry, 0, len(ladder))
	for i, playerID := range ladder {
		rec := records[playerID]
		entries = append(entries, Entry{
			PlayerID:      playerID,
			Rank:          i + 1,
			Wins:          rec.wins,
			Losses:        rec.losses,
			MatchesPlayed: rec.wins + rec.losses,
			GamesWon:      rec.games,
		})
	}
	return entries
}

func indexOf(ladder []int, playerID int) int {
	for i, id := range ladder {
		if id == playerID {
			return i
		}
	}
	return -1
}
