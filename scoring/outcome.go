package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrBadBestOf       = errors.New("best-of must be 3 or 5")
	ErrFaultSideNeeded = errors.New("retired or defaulted score needs the at-fault side")
	ErrExtraSets       = errors.New("score continues past the deciding set")
)

// Outcome is the resolved result of a match. Completed is false while
// neither side has reached the required set count; Winner is only
// meaningful when Completed is true.
type Outcome struct {
	Winner    Side
	Completed bool
	SetsA     int
	SetsB     int
}

// Resolve decides a match from its parsed sets and terminal state.
//
// Retirements and defaults award the match to the other side no matter
// what partial sets were entered; the at-fault side is the reporter's
// explicit choice, never inferred from the score. A normal score wins
// by reaching ceil((bestOf+1)/2) set wins; anything short of that is an
// incomplete match, not an error and not a guessed winner.
func Resolve(sets []SetScore, terminal TerminalState, atFault *Side, bestOf int) (Outcome, error) {
	if bestOf == 0 {
		bestOf = 3
	}
	if bestOf != 3 && bestOf != 5 {
		return Outcome{}, fmt.Errorf("%w: got %d", ErrBadBestOf, bestOf)
	}
	need := (bestOf + 1) / 2

	var out Outcome
	for _, set := range sets {
		winner, err := set.Winner()
		if err != nil {
			return Outcome{}, err
		}
		if out.SetsA >= need || out.SetsB >= need {
			return Outcome{}, ErrExtraSets
		}
		if winner == SideA {
			out.SetsA++
		} else {
			out.SetsB++
		}
	}

	switch terminal {
	case TerminalRetired, TerminalDefaulted:
		if atFault == nil {
			return Outcome{}, ErrFaultSideNeeded
		}
		out.Winner = atFault.Other()
		out.Completed = true
		return out, nil
	}

	switch {
	case out.SetsA >= need:
		out.Winner = SideA
		out.Completed = true
	case out.SetsB >= need:
		out.Winner = SideB
		out.Completed = true
	}
	return out, nil
}

// GamesWon totals the games column-wise, used by the round-robin
// tie-break.
func GamesWon(sets []SetScore) (gamesA, gamesB int) {
	for _, s := range sets {
		gamesA += s.GamesA
		gamesB += s.GamesB
	}
	return gamesA, gamesB
}
