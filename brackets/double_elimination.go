package brackets

import (
	"context"
	"fmt"
)

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() Generator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) Name() string {
	return "DoubleElimination"
}

// Generate builds a winners bracket identical to the single
// elimination draw, a losers bracket that absorbs every winners-side
// loser, and a grand final. Nobody is out after one loss; elimination
// takes a losers-bracket loss or the grand final. The grand final is a
// single match (no bracket reset).
//
// For a draw of size 2^n the losers bracket has 2(n-1) rounds: odd
// rounds pair up losers-bracket survivors, even rounds drop in the
// losers of the next winners round. Every other drop round reverses
// the drop order to push immediate rematches apart.
func (g *DoubleEliminationGenerator) Generate(ctx context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Roster)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}

	seeded := sortBySeed(params.Roster)
	size := bracketSize(n)
	wbRounds := 0
	for s := size; s > 1; s /= 2 {
		wbRounds++
	}

	matches := buildEliminationTree(seeded, size, wbRounds, "W")
	for _, m := range matches {
		m.GlobalRound = globalRoundW(m.Round)
	}
	wbFinal := matches[len(matches)-1]

	var lbFinal *Match
	if wbRounds == 1 {
		// Two players: the grand final doubles as the losers bracket.
		lbFinal = nil
	} else {
		var lb []*Match
		lb, lbFinal = buildLosersBracket(size, wbRounds)
		matches = append(matches, lb...)
	}

	gf := &Match{
		UID:         matchUID("GF", 1, 1),
		Round:       1,
		Order:       1,
		Section:     "GF",
		GlobalRound: 3*wbRounds - 1,
		A:           Slot{WinnerOf: wbFinal.UID},
	}
	if lbFinal != nil {
		gf.B = Slot{WinnerOf: lbFinal.UID}
	} else {
		gf.B = Slot{LoserOf: wbFinal.UID}
	}
	matches = append(matches, gf)

	return newBracket(matches, gf.GlobalRound)
}

// buildLosersBracket wires losers-bracket rounds 1..2(wbRounds-1) and
// returns the matches plus the losers final.
func buildLosersBracket(size, wbRounds int) ([]*Match, *Match) {
	matches := make([]*Match, 0, size-2)
	var prev []*Match

	for k := 1; k <= wbRounds-1; k++ {
		count := size >> (k + 1) // matches in each of the two rounds of this tier

		// Odd round: survivors (or, for the first tier, the winners
		// round 1 losers paired among themselves).
		odd := 2*k - 1
		oddMatches := make([]*Match, count)
		for i := 0; i < count; i++ {
			m := &Match{
				UID:         matchUID("L", odd, i+1),
				Round:       odd,
				Order:       i + 1,
				Section:     "L",
				GlobalRound: globalRoundL(odd),
			}
			if k == 1 {
				m.A = Slot{LoserOf: matchUID("W", 1, 2*i+1)}
				m.B = Slot{LoserOf: matchUID("W", 1, 2*i+2)}
			} else {
				m.A = Slot{WinnerOf: prev[2*i].UID}
				m.B = Slot{WinnerOf: prev[2*i+1].UID}
			}
			oddMatches[i] = m
			matches = append(matches, m)
		}

		// Even round: drop in the losers of winners round k+1.
		even := 2 * k
		evenMatches := make([]*Match, count)
		for i := 0; i < count; i++ {
			dropOrder := i + 1
			if k%2 == 1 {
				dropOrder = count - i
			}
			m := &Match{
				UID:         matchUID("L", even, i+1),
				Round:       even,
				Order:       i + 1,
				Section:     "L",
				GlobalRound: globalRoundL(even),
				A:           Slot{WinnerOf: oddMatches[i].UID},
				B:           Slot{LoserOf: matchUID("W", k+1, dropOrder)},
			}
			evenMatches[i] = m
			matches = append(matches, m)
		}
		prev = evenMatches
	}

	return matches, prev[0]
}

// Global round numbers follow play order so standings can compare
// progress across sections: W1, L1, W2, L2, L3, W3, L4, ... GF.
func globalRoundW(round int) int {
	if round == 1 {
		return 1
	}
	return 3 * (round - 1)
}

func globalRoundL(round int) int {
	k := round / 2
	if round%2 == 0 {
		return 3*k + 1
	}
	return 3*k + 2
}
