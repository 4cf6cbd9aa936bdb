package brackets

import (
	"fmt"
	"sort"
)

// SwissPlayer is one player entering a swiss round with their running
// record.
type SwissPlayer struct {
	PlayerID int
	Seed     int
	Wins     int
	Losses   int
	// Faced lists opponents already played, to avoid rematches.
	Faced []int
}

// PairSwissRound pairs the field for the given swiss round: players
// are ordered by win/loss differential then seed, and each takes the
// highest-placed opponent they have not faced yet. With an odd field
// the lowest unpaired player receives a bye. The pairing is
// deterministic for a given field.
func PairSwissRound(field []SwissPlayer, round int) []*Match {
	ordered := make([]SwissPlayer, len(field))
	copy(ordered, field)
	sort.SliceStable(ordered, func(i, j int) bool {
		di := ordered[i].Wins - ordered[i].Losses
		dj := ordered[j].Wins - ordered[j].Losses
		if di != dj {
			return di > dj
		}
		return ordered[i].Seed < ordered[j].Seed
	})

	faced := make(map[int]map[int]bool, len(ordered))
	for _, p := range ordered {
		set := make(map[int]bool, len(p.Faced))
		for _, opp := range p.Faced {
			set[opp] = true
		}
		faced[p.PlayerID] = set
	}

	paired := make(map[int]bool, len(ordered))
	matches := make([]*Match, 0, len(ordered)/2+1)
	order := 0

	for i, p := range ordered {
		if paired[p.PlayerID] {
			continue
		}
		opponent := -1
		for j := i + 1; j < len(ordered); j++ {
			candidate := ordered[j]
			if paired[candidate.PlayerID] || faced[p.PlayerID][candidate.PlayerID] {
				continue
			}
			opponent = j
			break
		}
		if opponent < 0 {
			// No fresh opponent left; fall back to the next unpaired
			// player even if it is a rematch.
			for j := i + 1; j < len(ordered); j++ {
				if !paired[ordered[j].PlayerID] {
					opponent = j
					break
				}
			}
		}
		order++
		if opponent < 0 {
			// Odd field: bye, resolved immediately as a walkover win.
			// Swiss rounds never pass through a bracket, so the winner
			// must be settled here rather than by settleByes.
			m := &Match{
				UID:         fmt.Sprintf("S%dM%d", round, order),
				Round:       round,
				Order:       order,
				GlobalRound: round,
				A:           playerSlot(p.PlayerID),
				B:           byeSlot(),
				IsBye:       true,
			}
			m.WinnerID = m.A.PlayerID
			matches = append(matches, m)
			paired[p.PlayerID] = true
			continue
		}
		opp := ordered[opponent]
		matches = append(matches, &Match{
			UID:         fmt.Sprintf("S%dM%d", round, order),
			Round:       round,
			Order:       order,
			GlobalRound: round,
			A:           playerSlot(p.PlayerID),
			B:           playerSlot(opp.PlayerID),
		})
		paired[p.PlayerID] = true
		paired[opp.PlayerID] = true
	}

	return matches
}
