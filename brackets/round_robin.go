package brackets

import (
	"context"
	"fmt"
	"sort"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate creates every pairing of the roster once, or twice with
// sides swapped when DoubleLeg is set. All pairings are playable
// immediately; there is no progression to thread, so the bracket's
// graph is edgeless.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Roster)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}

	seeded := sortBySeed(params.Roster)
	legPairs := n * (n - 1) / 2

	matches := make([]*Match, 0, legPairs)
	order := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			order++
			matches = append(matches, &Match{
				UID:         fmt.Sprintf("RRM%d", order),
				Round:       1,
				Order:       order,
				GlobalRound: 1,
				A:           playerSlot(seeded[i].PlayerID),
				B:           playerSlot(seeded[j].PlayerID),
			})
			if params.DoubleLeg {
				matches = append(matches, &Match{
					UID:         fmt.Sprintf("RRM%d_L2", order),
					Round:       1,
					Order:       order + legPairs,
					GlobalRound: 1,
					A:           playerSlot(seeded[j].PlayerID),
					B:           playerSlot(seeded[i].PlayerID),
				})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Order < matches[j].Order
	})

	return newBracket(matches, 1)
}
