package standings

import "sort"

// ComputeSwiss ranks a swiss phase by win/loss differential, with the
// Buchholz sum (the differentials of the opponents a player has faced)
// as the first tie-break, then seed. Like elimination play there is no
// points column; position in the swiss field is the standing.
func ComputeSwiss(roster []RosterPlayer, results []MatchResult) []Entry {
	records := tally(roster, results)

	faced := make(map[int][]int, len(roster))
	for _, r := range results {
		if _, ok := records[r.P1ID]; !ok {
			continue
		}
		if _, ok := records[r.P2ID]; !ok {
			continue
		}
		faced[r.P1ID] = append(faced[r.P1ID], r.P2ID)
		faced[r.P2ID] = append(faced[r.P2ID], r.P1ID)
	}

	diff := func(playerID int) int {
		rec := records[playerID]
		return rec.wins - rec.losses
	}
	buchholz := func(playerID int) int {
		sum := 0
		for _, opp := range faced[playerID] {
			sum += diff(opp)
		}
		return sum
	}

	seedOf := make(map[int]int, len(roster))
	entries := make([]Entry, 0, len(roster))
	for _, p := range roster {
		seedOf[p.PlayerID] = p.Seed
		rec := records[p.PlayerID]
		entries = append(entries, Entry{
			PlayerID:      p.PlayerID,
			Wins:          rec.wins,
			Losses:        rec.losses,
			MatchesPlayed: rec.wins + rec.losses,
			GamesWon:      rec.games,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if d := diff(a.PlayerID) - diff(b.PlayerID); d != 0 {
			return d > 0
		}
		if d := buchholz(a.PlayerID) - buchholz(b.PlayerID); d != 0 {
			return d > 0
		}
		return seedOf[a.PlayerID] < seedOf[b.PlayerID]
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
