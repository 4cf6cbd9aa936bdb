package brackets

import (
	"context"
	"fmt"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate builds a seeded single elimination draw. Round 1 pairs seed
// i with seed size+1-i; when the field is not a power of two the
// missing bottom seeds become byes, so the top seeds walk over. Byes
// resolve immediately and their winners are already advanced in the
// returned bracket.
func (g *SingleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Roster)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}

	seeded := sortBySeed(params.Roster)
	size := bracketSize(n)
	numRounds := 0
	for s := size; s > 1; s /= 2 {
		numRounds++
	}

	matches := buildEliminationTree(seeded, size, numRounds, "")
	return newBracket(matches, numRounds)
}

// buildEliminationTree lays out one elimination tree. The section
// prefix distinguishes the winners bracket of a double elimination
// draw from a plain single elimination draw sharing this layout.
func buildEliminationTree(seeded []Seed, size, numRounds int, section string) []*Match {
	order := seedOrder(size)
	matches := make([]*Match, 0, size-1)

	// Round 1 from the seed order, byes for positions beyond the
	// field.
	round1 := size / 2
	firstRound := make([]*Match, round1)
	for i := 0; i < round1; i++ {
		seedA, seedB := order[2*i], order[2*i+1]
		m := &Match{
			UID:         matchUID(section, 1, i+1),
			Round:       1,
			Order:       i + 1,
			Section:     section,
			GlobalRound: 1,
		}
		m.A = slotForSeed(seeded, seedA)
		m.B = slotForSeed(seeded, seedB)
		if m.A.Bye || m.B.Bye {
			// Keep the real player on side A of a walkover.
			if m.A.Bye {
				m.A, m.B = m.B, m.A
			}
			m.IsBye = true
		}
		firstRound[i] = m
		matches = append(matches, m)
	}

	// Later rounds reference the winners of the previous round.
	prev := firstRound
	for r := 2; r <= numRounds; r++ {
		cur := make([]*Match, len(prev)/2)
		for i := range cur {
			m := &Match{
				UID:         matchUID(section, r, i+1),
				Round:       r,
				Order:       i + 1,
				Section:     section,
				GlobalRound: r,
				A:           Slot{WinnerOf: prev[2*i].UID},
				B:           Slot{WinnerOf: prev[2*i+1].UID},
			}
			cur[i] = m
			matches = append(matches, m)
		}
		prev = cur
	}

	return matches
}

func slotForSeed(seeded []Seed, seed int) Slot {
	if seed > len(seeded) {
		return byeSlot()
	}
	return playerSlot(seeded[seed-1].PlayerID)
}

func matchUID(section string, round, order int) string {
	if section == "" {
		return fmt.Sprintf("R%dM%d", round, order)
	}
	return fmt.Sprintf("%s%dM%d", section, round, order)
}
