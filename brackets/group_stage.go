package brackets

import (
	"context"
	"fmt"
)

// GroupStageGenerator splits the field into snaked seed groups and
// generates a round robin inside each. Groups is the number of groups;
// zero targets groups of four.
type GroupStageGenerator struct {
	Groups int
}

func NewGroupStageGenerator(groups int) Generator {
	return &GroupStageGenerator{Groups: groups}
}

func (g *GroupStageGenerator) Name() string {
	return "GroupStage"
}

func (g *GroupStageGenerator) Generate(ctx context.Context, params GenerateParams) (*Bracket, error) {
	n := len(params.Roster)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, n)
	}

	count := g.Groups
	if count <= 0 {
		count = (n + 3) / 4
	}
	if count > n/2 {
		count = n / 2
	}
	if count < 1 {
		count = 1
	}

	groups := snakeSeedGroups(sortBySeed(params.Roster), count)

	matches := make([]*Match, 0)
	for gi, group := range groups {
		order := 0
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				order++
				matches = append(matches, &Match{
					UID:         fmt.Sprintf("G%dM%d", gi+1, order),
					Round:       1,
					Order:       order,
					GlobalRound: 1,
					A:           playerSlot(group[i].PlayerID),
					B:           playerSlot(group[j].PlayerID),
				})
			}
		}
	}

	return newBracket(matches, 1)
}

// snakeSeedGroups deals a seed-sorted field into groups serpentine
// style, so seed strength balances out: 1..g left to right, then
// g+1..2g right to left.
func snakeSeedGroups(seeded []Seed, count int) [][]Seed {
	groups := make([][]Seed, count)
	for i, s := range seeded {
		lap, pos := i/count, i%count
		gi := pos
		if lap%2 == 1 {
			gi = count - 1 - pos
		}
		groups[gi] = append(groups[gi], s)
	}
	return groups
}
