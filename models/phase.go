package models

import "time"

// FormatTag identifies one tournament format. A tournament tagged
// FormatCustom owns an ordered list of phases, each with its own tag.
type FormatTag string

const (
	FormatLadder            FormatTag = "ladder"
	FormatRoundRobin        FormatTag = "roundRobin"
	FormatSingleElimination FormatTag = "singleElimination"
	FormatDoubleElimination FormatTag = "doubleElimination"
	FormatSwiss             FormatTag = "swiss"
	FormatGroupStage        FormatTag = "groupStage"
	FormatCustom            FormatTag = "custom"
)

type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

// Phase is one configured stage of a tournament. Phases of the same
// tournament are ordered by Position and each produces its own
// standings view.
type Phase struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Name         string      `json:"name" db:"name"`
	Position     int         `json:"position" db:"position"`
	Format       FormatTag   `json:"format" db:"format"`
	StartDate    time.Time   `json:"start_date" db:"start_date"`
	EndDate      time.Time   `json:"end_date" db:"end_date"`
	Status       PhaseStatus `json:"status" db:"status"`
	RulesJSON    *string     `json:"-" db:"rules_json"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Parsed from RulesJSON by the service layer, never stored.
	Rules []Rule `json:"rules,omitempty" db:"-"`
}
