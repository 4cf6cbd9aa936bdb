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
	ErrRosterEntryNotFound  = errors.New("roster entry not found")
	ErrRosterEntryConflict  = errors.New("player is already registered for this tournament")
	ErrRosterPlayerInvalid  = errors.New("roster references an unknown player")
	ErrRosterTournamentGone = errors.New("roster references an unknown tournament")
)

type RosterRepository interface {
	Add(ctx context.Context, exec SQLExecutor, entry *models.RosterEntry) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.RosterEntry, error)
	UpdateSeed(ctx context.Context, entryID, seed int) error
	UpdateStatus(ctx context.Context, entryID int, status models.RosterStatus) error
	CountRegistered(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRosterRepository) Add(ctx context.Context, exec SQLExecutor, entry *models.RosterEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO roster_entries (tournament_id, player_id, seed, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		entry.TournamentID, entry.PlayerID, entry.Seed, entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "roster_entries_tournament_id_player_id_key" {
					return ErrRosterEntryConflict
				}
			case "23503":
				switch pqErr.Constraint {
				case "roster_entries_player_id_fkey":
					return ErrRosterPlayerInvalid
				case "roster_entries_tournament_id_fkey":
					return ErrRosterTournamentGone
				}
			}
		}
		return fmt.Errorf("failed to add roster entry: %w", err)
	}
	return nil
}

// ListByTournament returns entries in registration order (id order),
// with the player row joined in.
func (r *postgresRosterRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.RosterEntry, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT
			re.id, re.tournament_id, re.player_id, re.seed, re.status, re.created_at,
			p.id, p.user_id, p.name, p.skill, p.wins, p.losses, p.matches_played,
			p.active, p.photo_key, p.created_at
		FROM roster_entries re
		JOIN players p ON p.id = re.player_id
		WHERE re.tournament_id = $1
		ORDER BY re.id ASC`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	entries := make([]models.RosterEntry, 0)
	for rows.Next() {
		var entry models.RosterEntry
		var player models.Player
		err := rows.Scan(
			&entry.ID, &entry.TournamentID, &entry.PlayerID, &entry.Seed,
			&entry.Status, &entry.CreatedAt,
			&player.ID, &player.UserID, &player.Name, &player.Skill,
			&player.Wins, &player.Losses, &player.MatchesPlayed,
			&player.Active, &player.PhotoKey, &player.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entry.Player = &player
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *postgresRosterRepository) UpdateSeed(ctx context.Context, entryID, seed int) error {
	query := `UPDATE roster_entries SET seed = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, seed, entryID)
	if err != nil {
		return fmt.Errorf("failed to update seed for roster entry %d: %w", entryID, err)
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresRosterRepository) UpdateStatus(ctx context.Context, entryID int, status models.RosterStatus) error {
	query := `UPDATE roster_entries SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, entryID)
	if err != nil {
		return fmt.Errorf("failed to update status for roster entry %d: %w", entryID, err)
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresRosterRepository) CountRegistered(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `SELECT COUNT(*) FROM roster_entries WHERE tournament_id = $1 AND status = $2`

	var count int
	err := executor.QueryRowContext(ctx, query, tournamentID, models.RosterRegistered).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roster for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}
