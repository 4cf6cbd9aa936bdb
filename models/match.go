package models

import "time"

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

// Match is a singles or doubles match inside one phase. P1/P2 are the
// two sides; for doubles each side additionally carries a partner.
// Invariant: a completed match always has a non-nil WinnerID, which is
// either P1ID or P2ID.
type Match struct {
	ID           int  `json:"id" db:"id"`
	TournamentID int  `json:"tournament_id" db:"tournament_id"`
	PhaseID      int  `json:"phase_id" db:"phase_id"`
	Round        *int `json:"round,omitempty" db:"round"`

	P1ID        *int `json:"p1_id,omitempty" db:"p1_id"`
	P2ID        *int `json:"p2_id,omitempty" db:"p2_id"`
	P1PartnerID *int `json:"p1_partner_id,omitempty" db:"p1_partner_id"`
	P2PartnerID *int `json:"p2_partner_id,omitempty" db:"p2_partner_id"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`
	Court       *string    `json:"court,omitempty" db:"court"`

	Score    *string     `json:"score,omitempty" db:"score"`
	Status   MatchStatus `json:"status" db:"status"`
	WinnerID *int        `json:"winner_id,omitempty" db:"winner_id"`

	// Bracket plumbing: position of this match in a generated bracket
	// and where its winner (and, for double elimination, its loser)
	// advances to.
	BracketUID   *string   `json:"bracket_uid,omitempty" db:"bracket_uid"`
	NextMatchID  *int      `json:"next_match_id,omitempty" db:"next_match_id"`
	WinnerToSlot *int      `json:"winner_to_slot,omitempty" db:"winner_to_slot"`
	LoserMatchID *int      `json:"loser_match_id,omitempty" db:"loser_match_id"`
	LoserToSlot  *int      `json:"loser_to_slot,omitempty" db:"loser_to_slot"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Doubles reports whether both sides carry a partner.
func (m *Match) Doubles() bool {
	return m.P1PartnerID != nil && m.P2PartnerID != nil
}
