package models

import "time"

// Player is a global identity shared across tournaments. Per-tournament
// placement lives in RosterEntry and Standing; the counters here are
// cumulative across all completed matches.
type Player struct {
	ID            int       `json:"id" db:"id"`
	UserID        *int      `json:"user_id,omitempty" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Skill         int       `json:"skill" db:"skill"`
	Wins          int       `json:"wins" db:"wins"`
	Losses        int       `json:"losses" db:"losses"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}

type RosterStatus string

const (
	RosterRegistered RosterStatus = "registered"
	RosterWithdrawn  RosterStatus = "withdrawn"
)

// RosterEntry registers a player into a tournament. Seed is the
// pre-assigned ranking used for bracket pairings and the initial
// ladder order; registration order is the id order.
type RosterEntry struct {
	ID           int          `json:"id" db:"id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	PlayerID     int          `json:"player_id" db:"player_id"`
	Seed         int          `json:"seed" db:"seed"`
	Status       RosterStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
