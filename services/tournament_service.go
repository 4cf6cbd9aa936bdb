package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/michae1michae1/tennis-backend/formats"
	"github.com/michae1michae1/tennis-backend/models"
	"github.com/michae1michae1/tennis-backend/repositories"
	"golang.org/x/sync/errgroup"
)

// PhaseInput is one stage of the flow-builder payload: the format plus
// its typed rules, in play order.
type PhaseInput struct {
	Name   string        `json:"name"`
	Format string        `json:"format"`
	Rules  []models.Rule `json:"rules,omitempty"`
}

type CreateTournamentInput struct {
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Format      string       `json:"format"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Location    *string      `json:"location,omitempty"`
	MaxPlayers  int          `json:"max_players"`
	Phases      []PhaseInput `json:"phases,omitempty"`
}

type UpdateTournamentInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	MaxPlayers  *int       `json:"max_players,omitempty"`
}

type RegisterPlayerInput struct {
	PlayerID int `json:"player_id"`
	Seed     int `json:"seed,omitempty"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id, requesterUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id, requesterUserID int, status models.TournamentStatus) error
	RegisterPlayer(ctx context.Context, tournamentID int, input RegisterPlayerInput) (*models.RosterEntry, error)
	// AutoUpdateStatusesByDates flips registration to active and
	// active to completed as dates pass; called by the scheduler.
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	phaseRepo      repositories.PhaseRepository
	rosterRepo     repositories.RosterRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	userRepo       repositories.UserRepository
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	phaseRepo repositories.PhaseRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		phaseRepo:      phaseRepo,
		rosterRepo:     rosterRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.MaxPlayers <= 0 {
		return nil, ErrInvalidCapacity
	}

	format := models.FormatTag(input.Format)
	if format != models.FormatCustom && !formats.Known(format) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, input.Format)
	}

	phaseInputs := input.Phases
	if format == models.FormatCustom {
		if len(phaseInputs) == 0 {
			return nil, ErrCustomNeedsPhases
		}
		for _, p := range phaseInputs {
			if !formats.Known(models.FormatTag(p.Format)) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, p.Format)
			}
		}
	} else {
		// A single-format tournament still owns one phase carrying
		// its rules, so standings and draws always have a phase to
		// hang off.
		rules := []models.Rule(nil)
		if len(phaseInputs) > 0 {
			rules = phaseInputs[0].Rules
		}
		phaseInputs = []PhaseInput{{Name: name, Format: input.Format, Rules: rules}}
	}

	tournament := &models.Tournament{
		Name:        name,
		Description: input.Description,
		OrganizerID: organizerID,
		Format:      format,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    input.Location,
		Status:      models.StatusDraft,
		MaxPlayers:  input.MaxPlayers,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		case errors.Is(err, repositories.ErrTournamentInvalidOrg):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	for i, p := range phaseInputs {
		phaseName := strings.TrimSpace(p.Name)
		if phaseName == "" {
			phaseName = fmt.Sprintf("Phase %d", i+1)
		}
		var rulesJSON *string
		if len(p.Rules) > 0 {
			encoded, err := json.Marshal(p.Rules)
			if err != nil {
				return nil, fmt.Errorf("failed to encode rules for phase %q: %w", phaseName, err)
			}
			str := string(encoded)
			rulesJSON = &str
		}
		phase := &models.Phase{
			TournamentID: tournament.ID,
			Name:         phaseName,
			Position:     i + 1,
			Format:       models.FormatTag(p.Format),
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			Status:       models.PhasePending,
			RulesJSON:    rulesJSON,
		}
		if err := s.phaseRepo.Create(ctx, tx, phase); err != nil {
			return nil, err
		}
		tournament.Phases = append(tournament.Phases, *phase)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tournament: %w", err)
	}
	return tournament, nil
}

// GetByID loads the tournament and its linked collections in parallel.
func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		phases, err := s.phaseRepo.ListByTournament(gctx, nil, id)
		if err != nil {
			return err
		}
		for i := range phases {
			rules, err := models.ParseRules(phases[i].RulesJSON)
			if err != nil {
				return fmt.Errorf("phase %d has malformed rules: %w", phases[i].ID, err)
			}
			phases[i].Rules = rules
		}
		tournament.Phases = phases
		return nil
	})
	g.Go(func() error {
		roster, err := s.rosterRepo.ListByTournament(gctx, nil, id)
		if err != nil {
			return err
		}
		tournament.Roster = roster
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gctx, nil, id)
		if err != nil {
			return err
		}
		tournament.Matches = matches
		return nil
	})
	g.Go(func() error {
		organizer, err := s.userRepo.GetByID(gctx, tournament.OrganizerID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil
			}
			return err
		}
		organizer.PasswordHash = ""
		tournament.Organizer = organizer
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Update(ctx context.Context, id, requesterUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.requireOrganizer(ctx, id, requesterUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		tournament.Name = name
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if !tournament.EndDate.After(tournament.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}
	if input.MaxPlayers != nil {
		if *input.MaxPlayers <= 0 {
			return nil, ErrInvalidCapacity
		}
		tournament.MaxPlayers = *input.MaxPlayers
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}
	return tournament, nil
}

// validStatusTransitions is the forward lifecycle plus cancellation
// from any state short of completed.
var validStatusTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.StatusDraft:        {models.StatusRegistration, models.StatusCancelled},
	models.StatusRegistration: {models.StatusActive, models.StatusCancelled},
	models.StatusActive:       {models.StatusCompleted, models.StatusCancelled},
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, requesterUserID int, status models.TournamentStatus) error {
	tournament, err := s.requireOrganizer(ctx, id, requesterUserID)
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range validStatusTransitions[tournament.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s to %s", ErrInvalidStatusChange, tournament.Status, status)
	}
	return s.tournamentRepo.UpdateStatus(ctx, nil, id, status)
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, tournamentID int, input RegisterPlayerInput) (*models.RosterEntry, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if !player.Active {
		return nil, fmt.Errorf("%w: player is inactive", ErrValidationFailed)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count, err := s.rosterRepo.CountRegistered(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if count >= tournament.MaxPlayers {
		return nil, ErrTournamentFull
	}

	seed := input.Seed
	if seed == 0 {
		seed = count + 1
	}
	entry := &models.RosterEntry{
		TournamentID: tournamentID,
		PlayerID:     input.PlayerID,
		Seed:         seed,
		Status:       models.RosterRegistered,
	}
	if err := s.rosterRepo.Add(ctx, tx, entry); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRosterEntryConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRosterPlayerInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	entry.Player = player
	return entry, nil
}

func (s *tournamentService) AutoUpdateStatusesByDates(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	due, err := s.tournamentRepo.ListForStatusUpdate(ctx, tx, time.Now())
	if err != nil {
		return err
	}

	for _, t := range due {
		var next models.TournamentStatus
		switch t.Status {
		case models.StatusRegistration:
			next = models.StatusActive
		case models.StatusActive:
			next = models.StatusCompleted
		default:
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, t.ID, next); err != nil {
			return err
		}
		if next == models.StatusCompleted {
			phases, err := s.phaseRepo.ListByTournament(ctx, tx, t.ID)
			if err != nil {
				return err
			}
			for _, p := range phases {
				if p.Status == models.PhaseCompleted {
					continue
				}
				if err := s.phaseRepo.UpdateStatus(ctx, tx, p.ID, models.PhaseCompleted); err != nil {
					return err
				}
			}
		}
		s.logger.Info("tournament status advanced",
			slog.Int("tournament_id", t.ID),
			slog.String("from", string(t.Status)),
			slog.String("to", string(next)),
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status updates: %w", err)
	}
	return nil
}

func (s *tournamentService) requireOrganizer(ctx context.Context, tournamentID, requesterUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.OrganizerID != requesterUserID {
		return nil, ErrOrganizerOnly
	}
	return tournament, nil
}
