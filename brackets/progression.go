package brackets

import (
	"fmt"

	"github.com/dominikbraun/graph"
)

// Bracket is a generated draw plus the dependency graph that drives
// winner (and loser) propagation between its matches.
type Bracket struct {
	Matches []*Match
	// FinalRound is the number of the last round of the main section,
	// used by standings to recognise the champion.
	FinalRound int

	byUID map[string]*Match
	dag   graph.Graph[string, string]
}

func newBracket(matches []*Match, finalRound int) (*Bracket, error) {
	b := &Bracket{
		Matches:    matches,
		FinalRound: finalRound,
		byUID:      make(map[string]*Match, len(matches)),
		dag:        graph.New(graph.StringHash, graph.Directed(), graph.Acyclic()),
	}

	for _, m := range matches {
		b.byUID[m.UID] = m
		if err := b.dag.AddVertex(m.UID); err != nil {
			return nil, fmt.Errorf("bracket vertex %s: %w", m.UID, err)
		}
	}

	// An edge from feeder to dependant for every slot reference.
	for _, m := range matches {
		for _, slot := range []*Slot{&m.A, &m.B} {
			src := slot.WinnerOf
			if src == "" {
				src = slot.LoserOf
			}
			if src == "" {
				continue
			}
			if _, ok := b.byUID[src]; !ok {
				return nil, fmt.Errorf("%w: slot of %s references %s", ErrUnknownMatch, m.UID, src)
			}
			if err := b.dag.AddEdge(src, m.UID); err != nil {
				return nil, fmt.Errorf("bracket edge %s->%s: %w", src, m.UID, err)
			}
		}
	}

	b.settleByes()
	return b, nil
}

// settleByes resolves generation-time walkovers and pushes their
// occupants forward.
func (b *Bracket) settleByes() {
	for _, m := range b.Matches {
		if m.IsBye && m.WinnerID == nil && m.A.PlayerID != nil {
			m.WinnerID = m.A.PlayerID
			b.propagate(m)
		}
	}
}

// Get returns the match with the given uid.
func (b *Bracket) Get(uid string) (*Match, bool) {
	m, ok := b.byUID[uid]
	return m, ok
}

// ApplyResult records a winner for a pending match and advances the
// occupants into every dependent slot. A resolved match cannot change
// its winner (corrections rebuild the bracket from the match list
// instead), and a match whose slots are not yet filled cannot be
// resolved at all.
func (b *Bracket) ApplyResult(uid string, winnerID int) error {
	m, ok := b.byUID[uid]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatch, uid)
	}
	switch m.State() {
	case StateResolved:
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, uid)
	case StateEmpty:
		return fmt.Errorf("%w: %s", ErrSlotNotPending, uid)
	}
	a, bID, _ := m.Occupants()
	if winnerID != a && winnerID != bID {
		return fmt.Errorf("%w: player %d in match %s", ErrNotInMatch, winnerID, uid)
	}

	w := winnerID
	m.WinnerID = &w
	b.propagate(m)
	return nil
}

// propagate pushes the winner and loser of a resolved match into the
// slots that reference it, walking dependants breadth-first so chained
// byes settle in one pass.
func (b *Bracket) propagate(from *Match) {
	_ = graph.BFS(b.dag, from.UID, func(uid string) bool {
		m := b.byUID[uid]
		changed := false
		for _, slot := range []*Slot{&m.A, &m.B} {
			if slot.PlayerID != nil || slot.Bye {
				continue
			}
			var feeder *Match
			var wantWinner bool
			switch {
			case slot.WinnerOf != "":
				feeder, wantWinner = b.byUID[slot.WinnerOf], true
			case slot.LoserOf != "":
				feeder, wantWinner = b.byUID[slot.LoserOf], false
			default:
				continue
			}
			if feeder == nil {
				continue
			}
			if feeder.WinnerID == nil {
				// A double walkover resolves to nobody; the slot it
				// feeds is a bye on both paths.
				if feeder.A.Bye && feeder.B.Bye {
					slot.Bye = true
					changed = true
				}
				continue
			}
			var id *int
			if wantWinner {
				id = feeder.WinnerID
			} else {
				id = feeder.loserID()
				if id == nil && feeder.IsBye {
					// A bye has no loser; the dependent slot becomes a
					// bye itself.
					slot.Bye = true
					changed = true
					continue
				}
			}
			if id != nil {
				v := *id
				slot.PlayerID = &v
				changed = true
			}
		}
		// A freshly filled slot pair facing a bye walks over.
		if changed && m.WinnerID == nil {
			if m.A.PlayerID != nil && m.B.Bye {
				m.WinnerID = m.A.PlayerID
			} else if m.B.PlayerID != nil && m.A.Bye {
				m.WinnerID = m.B.PlayerID
			} else if m.A.Bye && m.B.Bye {
				m.IsBye = true
			}
		}
		return false
	})
}

// Replay folds a uid -> winner map into a fresh bracket in dependency
// order. Used to rebuild in-memory state from persisted matches and
// for organizer corrections (full rebuild, no incremental repair).
func (b *Bracket) Replay(winners map[string]int) error {
	order, err := graph.TopologicalSort(b.dag)
	if err != nil {
		return fmt.Errorf("bracket replay: %w", err)
	}
	for _, uid := range order {
		winnerID, ok := winners[uid]
		if !ok {
			continue
		}
		m := b.byUID[uid]
		if m.State() == StateResolved {
			continue
		}
		if err := b.ApplyResult(uid, winnerID); err != nil {
			return err
		}
	}
	return nil
}

// Pending lists matches whose occupants are known but that have no
// winner yet, in round order. These are the playable matches.
func (b *Bracket) Pending() []*Match {
	pending := make([]*Match, 0)
	for _, m := range b.Matches {
		if !m.IsBye && m.State() == StatePending {
			pending = append(pending, m)
		}
	}
	return pending
}
