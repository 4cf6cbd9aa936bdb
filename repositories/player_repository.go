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
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerUserInvalid = errors.New("player references an unknown user")
)

type ListPlayersFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error
	// AddMatchResult bumps the cumulative counters after a completed
	// match; delta is +1 win or +1 loss.
	AddMatchResult(ctx context.Context, exec SQLExecutor, playerID int, won bool) error
	// RevertMatchResult undoes AddMatchResult when a score correction
	// flips a recorded result.
	RevertMatchResult(ctx context.Context, exec SQLExecutor, playerID int, won bool) error
	Deactivate(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (user_id, name, skill, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Skill, p.Active,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "players_user_id_fkey" {
			return ErrPlayerUserInvalid
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

const playerColumns = `id, user_id, name, skill, wins, losses, matches_played, active, photo_key, created_at`

func scanPlayer(scanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := scanner.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Skill,
		&p.Wins,
		&p.Losses,
		&p.MatchesPlayed,
		&p.Active,
		&p.PhotoKey,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter ListPlayersFilter) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players`
	args := []interface{}{}
	if filter.ActiveOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, skill = $2, active = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Skill, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update player %d: %w", p.ID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, playerID)
	if err != nil {
		return fmt.Errorf("failed to update photo key for player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) AddMatchResult(ctx context.Context, exec SQLExecutor, playerID int, won bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET wins = wins + $1, losses = losses + $2, matches_played = matches_played + 1
		WHERE id = $3`

	winDelta, lossDelta := 0, 1
	if won {
		winDelta, lossDelta = 1, 0
	}
	result, err := executor.ExecContext(ctx, query, winDelta, lossDelta, playerID)
	if err != nil {
		return fmt.Errorf("failed to record match result for player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) RevertMatchResult(ctx context.Context, exec SQLExecutor, playerID int, won bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET wins = wins - $1, losses = losses - $2, matches_played = matches_played - 1
		WHERE id = $3`

	winDelta, lossDelta := 0, 1
	if won {
		winDelta, lossDelta = 1, 0
	}
	result, err := executor.ExecContext(ctx, query, winDelta, lossDelta, playerID)
	if err != nil {
		return fmt.Errorf("failed to revert match result for player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// Deactivate keeps the row so historical standings stay intact.
func (r *postgresPlayerRepository) Deactivate(ctx context.Context, id int) error {
	query := `UPDATE players SET active = false WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
