package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/michae1michae1/tennis-backend/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Match, error)
	ListByPhase(ctx context.Context, exec SQLExecutor, phaseID int) ([]models.Match, error)
	UpdateSchedule(ctx context.Context, match *models.Match) error
	// UpdateResult writes score, status, winner together so a match
	// can never be completed without its winner.
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	// UpdateSlots fills a bracket successor's side from a resolved
	// feeder; slot is 1 or 2.
	UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, playerID *int) error
	SetBracketLinks(ctx context.Context, exec SQLExecutor, match *models.Match) error
	DeleteByPhase(ctx context.Context, exec SQLExecutor, phaseID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (
			tournament_id, phase_id, round,
			p1_id, p2_id, p1_partner_id, p2_partner_id,
			scheduled_at, court, score, status, winner_id, bracket_uid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		m.TournamentID, m.PhaseID, m.Round,
		m.P1ID, m.P2ID, m.P1PartnerID, m.P2PartnerID,
		m.ScheduledAt, m.Court, m.Score, m.Status, m.WinnerID, m.BracketUID,
	).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "matches_p1_id_fkey", "matches_p2_id_fkey",
				"matches_p1_partner_id_fkey", "matches_p2_partner_id_fkey":
				return ErrMatchPlayerInvalid
			}
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

const matchColumns = `id, tournament_id, phase_id, round,
	p1_id, p2_id, p1_partner_id, p2_partner_id,
	scheduled_at, court, score, status, winner_id,
	bracket_uid, next_match_id, winner_to_slot, loser_match_id, loser_to_slot,
	created_at`

func scanMatch(scanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := scanner.Scan(
		&m.ID, &m.TournamentID, &m.PhaseID, &m.Round,
		&m.P1ID, &m.P2ID, &m.P1PartnerID, &m.P2PartnerID,
		&m.ScheduledAt, &m.Court, &m.Score, &m.Status, &m.WinnerID,
		&m.BracketUID, &m.NextMatchID, &m.WinnerToSlot, &m.LoserMatchID, &m.LoserToSlot,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) listWhere(ctx context.Context, exec SQLExecutor, where string, arg interface{}) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE ` + where + ` ORDER BY round ASC NULLS LAST, id ASC`

	rows, err := executor.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Match, error) {
	return r.listWhere(ctx, exec, `tournament_id = $1`, tournamentID)
}

func (r *postgresMatchRepository) ListByPhase(ctx context.Context, exec SQLExecutor, phaseID int) ([]models.Match, error) {
	return r.listWhere(ctx, exec, `phase_id = $1`, phaseID)
}

func (r *postgresMatchRepository) UpdateSchedule(ctx context.Context, m *models.Match) error {
	query := `UPDATE matches SET scheduled_at = $1, court = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, m.ScheduledAt, m.Court, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update schedule for match %d: %w", m.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET score = $1, status = $2, winner_id = $3 WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, m.Score, m.Status, m.WinnerID, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", m.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateSlot(ctx context.Context, exec SQLExecutor, matchID, slot int, playerID *int) error {
	executor := r.getExecutor(exec)
	column := "p1_id"
	if slot == 2 {
		column = "p2_id"
	}
	query := fmt.Sprintf(`UPDATE matches SET %s = $1 WHERE id = $2`, column)
	result, err := executor.ExecContext(ctx, query, playerID, matchID)
	if err != nil {
		return fmt.Errorf("failed to update slot %d for match %d: %w", slot, matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetBracketLinks(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET next_match_id = $1, winner_to_slot = $2, loser_match_id = $3, loser_to_slot = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query,
		m.NextMatchID, m.WinnerToSlot, m.LoserMatchID, m.LoserToSlot, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to set bracket links for match %d: %w", m.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// DeleteByPhase clears a phase's draw before regeneration.
func (r *postgresMatchRepository) DeleteByPhase(ctx context.Context, exec SQLExecutor, phaseID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE phase_id = $1`, phaseID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for phase %d: %w", phaseID, err)
	}
	return nil
}
