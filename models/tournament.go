package models

import "time"

type TournamentStatus string

const (
	StatusDraft        TournamentStatus = "draft"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCancelled    TournamentStatus = "cancelled"
)

// Tournament owns its phases and its roster. Format is the top-level
// tag; a custom tournament's real formats live on the phases.
type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	OrganizerID int              `json:"organizer_id" db:"organizer_id"`
	Format      FormatTag        `json:"format" db:"format"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	EndDate     time.Time        `json:"end_date" db:"end_date"`
	Location    *string          `json:"location,omitempty" db:"location"`
	Status      TournamentStatus `json:"status" db:"status"`
	MaxPlayers  int              `json:"max_players" db:"max_players"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`

	// Optional linked entities, populated by the service layer.
	Organizer *User         `json:"organizer,omitempty" db:"-"`
	Phases    []Phase       `json:"phases,omitempty" db:"-"`
	Roster    []RosterEntry `json:"roster,omitempty" db:"-"`
	Matches   []Match       `json:"matches,omitempty" db:"-"`
}
