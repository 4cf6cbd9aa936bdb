package standings

import "sort"

const pointsPerWin = 2

// ComputeRoundRobin ranks a round-robin phase. Points are 2 per win
// (losses score nothing). Ordering: points descending, then
// head-to-head wins inside the tied group, then total games won, then
// registration order. Every roster player gets a row; players with no
// completed matches end up last by construction.
func ComputeRoundRobin(roster []RosterPlayer, results []MatchResult) []Entry {
	records := tally(roster, results)

	entries := make([]Entry, 0, len(roster))
	for _, p := range roster {
		rec := records[p.PlayerID]
		entries = append(entries, Entry{
			PlayerID:      p.PlayerID,
			Points:        rec.wins * pointsPerWin,
			Wins:          rec.wins,
			Losses:        rec.losses,
			MatchesPlayed: rec.wins + rec.losses,
			GamesWon:      rec.games,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	// Break ties inside each equal-points group.
	for lo := 0; lo < len(entries); {
		hi := lo + 1
		for hi < len(entries) && entries[hi].Points == entries[lo].Points {
			hi++
		}
		if hi-lo > 1 {
			sortTiedGroup(entries[lo:hi], records, results)
		}
		lo = hi
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// sortTiedGroup orders an equal-points group by wins against the other
// members of the group, then games won, then registration order.
func sortTiedGroup(group []Entry, records map[int]*record, results []MatchResult) {
	inGroup := make(map[int]bool, len(group))
	for _, e := range group {
		inGroup[e.PlayerID] = true
	}

	h2h := make(map[int]int, len(group))
	for _, r := range results {
		if inGroup[r.P1ID] && inGroup[r.P2ID] {
			h2h[r.WinnerID]++
		}
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if h2h[a.PlayerID] != h2h[b.PlayerID] {
			return h2h[a.PlayerID] > h2h[b.PlayerID]
		}
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		return records[a.PlayerID].regIdx < records[b.PlayerID].regIdx
	})
}
