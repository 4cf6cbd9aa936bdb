package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/michae1michae1/tennis-backend/models"
)

var ErrPhaseNotFound = errors.New("phase not found")

type PhaseRepository interface {
	Create(ctx context.Context, exec SQLExecutor, phase *models.Phase) error
	GetByID(ctx context.Context, id int) (*models.Phase, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Phase, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.PhaseStatus) error
}

type postgresPhaseRepository struct {
	db *sql.DB
}

func NewPostgresPhaseRepository(db *sql.DB) PhaseRepository {
	return &postgresPhaseRepository{db: db}
}

func (r *postgresPhaseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPhaseRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Phase) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO phases (tournament_id, name, position, format, start_date, end_date, status, rules_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		p.TournamentID, p.Name, p.Position, p.Format,
		p.StartDate, p.EndDate, p.Status, p.RulesJSON,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create phase: %w", err)
	}
	return nil
}

const phaseColumns = `id, tournament_id, name, position, format, start_date, end_date, status, rules_json, created_at`

func scanPhase(scanner interface{ Scan(...interface{}) error }) (*models.Phase, error) {
	var p models.Phase
	err := scanner.Scan(
		&p.ID,
		&p.TournamentID,
		&p.Name,
		&p.Position,
		&p.Format,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.RulesJSON,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhaseNotFound
		}
		return nil, fmt.Errorf("failed to scan phase: %w", err)
	}
	return &p, nil
}

func (r *postgresPhaseRepository) GetByID(ctx context.Context, id int) (*models.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = $1`
	return scanPhase(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPhaseRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Phase, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE tournament_id = $1 ORDER BY position ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	phases := make([]models.Phase, 0)
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, *p)
	}
	return phases, rows.Err()
}

func (r *postgresPhaseRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.PhaseStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE phases SET status = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for phase %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPhaseNotFound)
}
