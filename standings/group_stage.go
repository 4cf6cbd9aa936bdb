package standings

import "sort"

// ComputeGroupStage splits the roster into groups by snaked seeding,
// ranks each group as a round robin and interleaves the final order by
// group rank (all group winners first, then all runners-up, and so
// on). Matches crossing group lines are ignored.
func ComputeGroupStage(roster []RosterPlayer, results []MatchResult, groupCount int) []Entry {
	if groupCount < 1 {
		groupCount = 1
	}
	if groupCount > len(roster) {
		groupCount = len(roster)
	}

	groups := SnakeGroups(roster, groupCount)

	ranked := make([][]Entry, len(groups))
	for i, group := range groups {
		ranked[i] = ComputeRoundRobin(group, results)
	}

	entries := make([]Entry, 0, len(roster))
	for depth := 0; ; depth++ {
		added := false
		for _, group := range ranked {
			if depth < len(group) {
				entries = append(entries, group[depth])
				added = true
			}
		}
		if !added {
			break
		}
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// SnakeGroups distributes seeded players across groups in serpentine
// order (1..N left to right, N+1..2N right to left) so group strength
// stays balanced.
func SnakeGroups(roster []RosterPlayer, groupCount int) [][]RosterPlayer {
	bySeed := make([]RosterPlayer, len(roster))
	copy(bySeed, roster)
	sort.SliceStable(bySeed, func(i, j int) bool {
		return bySeed[i].Seed < bySeed[j].Seed
	})

	groups := make([][]RosterPlayer, groupCount)
	for i, p := range bySeed {
		lap := i / groupCount
		pos := i % groupCount
		if lap%2 == 1 {
			pos = groupCount - 1 - pos
		}
		groups[pos] = append(groups[pos], p)
	}
	return groups
}
