package brackets

import "sort"

// bracketSize returns the next power of two that fits n players.
func bracketSize(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

// seedOrder returns the classic bracket slot sequence for a draw of
// the given power-of-two size: adjacent pairs meet in round 1, seed i
// faces seed size+1-i, and the top two seeds can only meet in the
// final. seedOrder(8) = [1 8 4 5 2 7 3 6].
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		mirror := len(order)*2 + 1
		for _, s := range order {
			next = append(next, s, mirror-s)
		}
		order = next
	}
	return order
}

// sortBySeed returns the roster ordered by seed, stable for equal
// seeds by roster position so an unseeded field keeps registration
// order.
func sortBySeed(roster []Seed) []Seed {
	sorted := make([]Seed, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seed < sorted[j].Seed
	})
	return sorted
}
