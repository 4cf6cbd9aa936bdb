package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/michae1michae1/tennis-backend/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	// ReplaceForPhase swaps the whole phase snapshot in one statement
	// pair; standings are always recomputed in full, never patched.
	ReplaceForPhase(ctx context.Context, exec SQLExecutor, phaseID int, standings []models.Standing) error
	ListByPhase(ctx context.Context, phaseID int) ([]models.Standing, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Standing, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ReplaceForPhase(ctx context.Context, exec SQLExecutor, phaseID int, standings []models.Standing) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM standings WHERE phase_id = $1`, phaseID); err != nil {
		return fmt.Errorf("failed to clear standings for phase %d: %w", phaseID, err)
	}

	query := `
		INSERT INTO standings (tournament_id, phase_id, player_id, rank, points, wins, losses, matches_played, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	for i := range standings {
		s := &standings[i]
		_, err := executor.ExecContext(ctx, query,
			s.TournamentID, s.PhaseID, s.PlayerID,
			s.Rank, s.Points, s.Wins, s.Losses, s.MatchesPlayed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert standing for player %d in phase %d: %w", s.PlayerID, phaseID, err)
		}
	}
	return nil
}

const standingColumns = `
	s.id, s.tournament_id, s.phase_id, s.player_id,
	s.rank, s.points, s.wins, s.losses, s.matches_played, s.updated_at,
	p.id, p.user_id, p.name, p.skill, p.wins, p.losses, p.matches_played,
	p.active, p.photo_key, p.created_at`

func (r *postgresStandingRepository) listWhere(ctx context.Context, where string, arg interface{}) ([]models.Standing, error) {
	query := `SELECT ` + standingColumns + `
		FROM standings s
		JOIN players p ON p.id = s.player_id
		WHERE ` + where + `
		ORDER BY s.phase_id ASC, s.rank ASC`

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		var p models.Player
		err := rows.Scan(
			&s.ID, &s.TournamentID, &s.PhaseID, &s.PlayerID,
			&s.Rank, &s.Points, &s.Wins, &s.Losses, &s.MatchesPlayed, &s.UpdatedAt,
			&p.ID, &p.UserID, &p.Name, &p.Skill, &p.Wins, &p.Losses, &p.MatchesPlayed,
			&p.Active, &p.PhotoKey, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		s.Player = &p
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) ListByPhase(ctx context.Context, phaseID int) ([]models.Standing, error) {
	return r.listWhere(ctx, `s.phase_id = $1`, phaseID)
}

func (r *postgresStandingRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	return r.listWhere(ctx, `s.tournament_id = $1`, tournamentID)
}
