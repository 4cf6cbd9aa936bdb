// Package brackets generates and advances tournament draws: seeded
// single and double elimination trees, round-robin pairings and swiss
// round pairings. Generators produce a blueprint of bracket matches;
// the service layer persists them and feeds results back through
// Bracket.ApplyResult.
package brackets

import (
	"context"
	"errors"
)

var (
	ErrTooFewPlayers   = errors.New("at least 2 players are required to generate a bracket")
	ErrUnknownMatch    = errors.New("unknown bracket match uid")
	ErrSlotNotPending  = errors.New("match slots are not filled yet")
	ErrAlreadyResolved = errors.New("match is already resolved")
	ErrNotInMatch      = errors.New("winner is not an occupant of the match")
)

// Seed is one seeded roster entry, seed 1 being the strongest.
type Seed struct {
	PlayerID int
	Seed     int
}

// GenerateParams carries everything a generator needs. Roster must be
// the confirmed entries of the phase being drawn.
type GenerateParams struct {
	PhaseID int
	Roster  []Seed
	// DoubleLeg generates home-and-away legs for round robin.
	DoubleLeg bool
}

// Generator builds the match blueprint for one format.
type Generator interface {
	Generate(ctx context.Context, params GenerateParams) (*Bracket, error)
	Name() string
}

// SlotState is the lifecycle of one bracket slot pair. A slot never
// regresses from resolved.
type SlotState int

const (
	// StateEmpty: at least one side is still an unresolved reference
	// to a feeding match.
	StateEmpty SlotState = iota
	// StatePending: both occupants are known, no winner yet.
	StatePending
	// StateResolved: winner recorded.
	StateResolved
)

func (s SlotState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	}
	return "unknown"
}

// Slot is one side of a bracket match: either a known player, a bye,
// or a reference to the winner/loser of a feeding match.
type Slot struct {
	PlayerID *int
	Bye      bool
	// WinnerOf / LoserOf name the feeding match by UID. At most one is
	// set; LoserOf only occurs in losers brackets and grand finals.
	WinnerOf string
	LoserOf  string
}

func (s *Slot) occupied() bool {
	return s.PlayerID != nil || s.Bye
}

func playerSlot(playerID int) Slot {
	id := playerID
	return Slot{PlayerID: &id}
}

func byeSlot() Slot {
	return Slot{Bye: true}
}

// Match is one node of the generated draw.
type Match struct {
	UID   string
	Round int
	Order int
	// Section tells double-elimination matches apart: "W" winners,
	// "L" losers, "GF" grand final. Empty for other formats.
	Section string
	// GlobalRound orders matches by play order across sections; for
	// single-section draws it equals Round. Standings compare it to
	// rank players by progress.
	GlobalRound int

	A, B Slot

	WinnerID *int
	// IsBye marks a round-1 walkover created by an uneven field; it
	// resolves at generation time and is never played.
	IsBye bool
}

// State reports the slot state machine position for this match.
func (m *Match) State() SlotState {
	if m.WinnerID != nil {
		return StateResolved
	}
	if m.A.occupied() && m.B.occupied() {
		return StatePending
	}
	return StateEmpty
}

// Occupants returns the two player ids when both are known.
func (m *Match) Occupants() (a, b int, ok bool) {
	if m.A.PlayerID == nil || m.B.PlayerID == nil {
		return 0, 0, false
	}
	return *m.A.PlayerID, *m.B.PlayerID, true
}

func (m *Match) loserID() *int {
	a, b, ok := m.Occupants()
	if !ok || m.WinnerID == nil {
		return nil
	}
	loser := a
	if *m.WinnerID == a {
		loser = b
	}
	return &loser
}
