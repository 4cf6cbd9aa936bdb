package models

import "time"

// Standing is a player's computed record within one phase. Rows are
// recomputed in full from the phase's completed matches on every report,
// never updated incrementally.
type Standing struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	PhaseID       int       `json:"phase_id" db:"phase_id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	Rank          int       `json:"rank" db:"rank"`
	Points        int       `json:"points" db:"points"`
	Wins          int       `json:"wins" db:"wins"`
	Losses        int       `json:"losses" db:"losses"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}
