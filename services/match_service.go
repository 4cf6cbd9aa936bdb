package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/michae1michae1/tennis-backend/brackets"
	"github.com/michae1michae1/tennis-backend/models"
	"github.com/michae1michae1/tennis-backend/repositories"
	"github.com/michae1michae1/tennis-backend/scoring"
)

type ScheduleMatchInput struct {
	PhaseID     int        `json:"phase_id"`
	P1ID        int        `json:"p1_id"`
	P2ID        int        `json:"p2_id"`
	P1PartnerID *int       `json:"p1_partner_id,omitempty"`
	P2PartnerID *int       `json:"p2_partner_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Court       *string    `json:"court,omitempty"`
}

// ReportScoreInput carries a result in either form: free score text
// ("6-4, 7-6(5)" or "Not played") with an optional terminal state, or
// a retirement/default with whatever partial sets were played.
type ReportScoreInput struct {
	Score       string `json:"score"`
	Terminal    string `json:"terminal,omitempty"`      // "", "normal", "retired", "defaulted"
	AtFaultSide string `json:"at_fault_side,omitempty"` // "A" or "B" when terminal is set
}

type MatchService interface {
	Schedule(ctx context.Context, tournamentID int, input ScheduleMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	// ReportScore runs the full pipeline: parse, resolve, persist,
	// recompute standings, advance the bracket, broadcast. A report
	// against an already completed match is an organizer correction
	// and triggers a full rebuild instead of incremental advancement.
	ReportScore(ctx context.Context, matchID, reporterUserID int, input ReportScoreInput) (*models.Match, error)
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	phaseRepo      repositories.PhaseRepository
	rosterRepo     repositories.RosterRepository
	playerRepo     repositories.PlayerRepository
	standingRepo   repositories.StandingRepository
	standingsSvc   StandingsService
	bracketSvc     BracketService
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	phaseRepo repositories.PhaseRepository,
	rosterRepo repositories.RosterRepository,
	playerRepo repositories.PlayerRepository,
	standingRepo repositories.StandingRepository,
	standingsSvc StandingsService,
	bracketSvc BracketService,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		phaseRepo:      phaseRepo,
		rosterRepo:     rosterRepo,
		playerRepo:     playerRepo,
		standingRepo:   standingRepo,
		standingsSvc:   standingsSvc,
		bracketSvc:     bracketSvc,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) Schedule(ctx context.Context, tournamentID int, input ScheduleMatchInput) (*models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	phase, err := s.phaseRepo.GetByID(ctx, input.PhaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhaseNotFound) {
			return nil, ErrPhaseNotFound
		}
		return nil, err
	}
	if phase.TournamentID != tournamentID {
		return nil, ErrPhaseNotInTournament
	}
	if input.P1ID == input.P2ID {
		return nil, fmt.Errorf("%w: a player cannot face themselves", ErrValidationFailed)
	}

	entries, err := s.rosterRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	onRoster := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Status == models.RosterRegistered {
			onRoster[e.PlayerID] = true
		}
	}
	for _, id := range []int{input.P1ID, input.P2ID} {
		if !onRoster[id] {
			return nil, ErrPlayerNotOnRoster
		}
	}

	if phase.Format == models.FormatLadder {
		if err := s.validateChallenge(ctx, phase, input.P1ID, input.P2ID); err != nil {
			return nil, err
		}
	}

	p1, p2 := input.P1ID, input.P2ID
	match := &models.Match{
		TournamentID: tournamentID,
		PhaseID:      input.PhaseID,
		P1ID:         &p1,
		P2ID:         &p2,
		P1PartnerID:  input.P1PartnerID,
		P2PartnerID:  input.P2PartnerID,
		ScheduledAt:  input.ScheduledAt,
		Court:        input.Court,
		Status:       models.MatchScheduled,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if errors.Is(err, repositories.ErrMatchPlayerInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return match, nil
}

// validateChallenge enforces the ladder challenge range rule: a
// challenger may only call out an opponent at most N positions above
// their own rank. Before any standings exist every pairing is legal.
func (s *matchService) validateChallenge(ctx context.Context, phase *models.Phase, challengerID, opponentID int) error {
	rules, err := models.ParseRules(phase.RulesJSON)
	if err != nil {
		return fmt.Errorf("phase %d has malformed rules: %w", phase.ID, err)
	}
	challengeRange := models.ChallengeRange(rules)
	if challengeRange == 0 {
		return nil
	}

	rows, err := s.standingRepo.ListByPhase(ctx, phase.ID)
	if err != nil {
		return err
	}
	ranks := make(map[int]int, len(rows))
	for _, row := range rows {
		ranks[row.PlayerID] = row.Rank
	}
	challengerRank, ok1 := ranks[challengerID]
	opponentRank, ok2 := ranks[opponentID]
	if !ok1 || !ok2 {
		return nil
	}
	if challengerRank-opponentRank > challengeRange {
		return fmt.Errorf("%w: rank %d challenging rank %d with a range of %d",
			ErrChallengeOutOfRange, challengerRank, opponentRank, challengeRange)
	}
	return nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.matchRepo.ListByTournament(ctx, nil, tournamentID)
}

func (s *matchService) ReportScore(ctx context.Context, matchID, reporterUserID int, input ReportScoreInput) (*models.Match, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.P1ID == nil || match.P2ID == nil {
		return nil, ErrMatchMissingPlayers
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	phase, err := s.phaseRepo.GetByID(ctx, match.PhaseID)
	if err != nil {
		return nil, err
	}

	correction := false
	switch match.Status {
	case models.MatchScheduled, models.MatchInProgress:
	case models.MatchCompleted:
		if tournament.OrganizerID != reporterUserID {
			return nil, ErrCorrectionNotAllowed
		}
		correction = true
	default:
		return nil, ErrMatchNotPlayable
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	sets, err := scoring.ParseSets(input.Score)
	if err != nil {
		return nil, err
	}
	terminal, atFault, err := parseTerminal(input)
	if err != nil {
		return nil, err
	}

	rules, err := models.ParseRules(phase.RulesJSON)
	if err != nil {
		return nil, fmt.Errorf("phase %d has malformed rules: %w", phase.ID, err)
	}

	outcome, err := scoring.Resolve(sets, terminal, atFault, models.BestOf(rules))
	if err != nil {
		return nil, err
	}

	canonical := scoring.FormatSets(sets)
	if !outcome.Completed {
		// A partial score is progress, not a result; nothing to
		// recompute or propagate.
		if correction {
			return nil, ErrScoreIncomplete
		}
		match.Score = &canonical
		match.Status = models.MatchInProgress
		if err := s.matchRepo.UpdateResult(ctx, nil, match); err != nil {
			return nil, err
		}
		s.broadcastMatch(tournament.ID, match)
		return match, nil
	}

	winnerID := *match.P1ID
	loserID := *match.P2ID
	if outcome.Winner == scoring.SideB {
		winnerID, loserID = loserID, winnerID
	}

	previousWinner := copyIntPtr(match.WinnerID)
	if correction {
		if err := s.checkCorrectionUnlocked(ctx, match); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match.Score = &canonical
	match.Status = models.MatchCompleted
	match.WinnerID = &winnerID
	if err := s.matchRepo.UpdateResult(ctx, tx, match); err != nil {
		return nil, err
	}

	if err := s.applyPlayerStats(ctx, tx, match, previousWinner, winnerID, loserID, correction); err != nil {
		return nil, err
	}

	if match.BracketUID != nil {
		if correction {
			if err := s.bracketSvc.RebuildPhaseProgression(ctx, tx, tournament, phase); err != nil {
				return nil, err
			}
		} else if err := s.advanceBracket(ctx, tx, match, winnerID, loserID); err != nil {
			return nil, err
		}
	}

	if err := s.standingsSvc.RecomputePhase(ctx, tx, tournament, phase); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score report: %w", err)
	}

	s.logger.Info("match result recorded",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Bool("correction", correction),
	)
	s.broadcastMatch(tournament.ID, match)
	s.hub.BroadcastToRoom(tournamentRoom(tournament.ID), brackets.Event{
		Type:    brackets.EventStandingsUpdated,
		Payload: map[string]interface{}{"phase_id": phase.ID},
	})
	return match, nil
}

// checkCorrectionUnlocked rejects a correction once either successor
// match already has its own result; flipping a winner under a played
// match would falsify the draw.
func (s *matchService) checkCorrectionUnlocked(ctx context.Context, match *models.Match) error {
	for _, nextID := range []*int{match.NextMatchID, match.LoserMatchID} {
		if nextID == nil {
			continue
		}
		next, err := s.matchRepo.GetByID(ctx, nil, *nextID)
		if err != nil {
			return err
		}
		if next.Status == models.MatchCompleted {
			return ErrCorrectionLocked
		}
	}
	return nil
}

// applyPlayerStats maintains the cumulative win/loss counters. A
// correction first reverts the previously recorded result.
func (s *matchService) applyPlayerStats(ctx context.Context, tx repositories.SQLExecutor, match *models.Match, previousWinner *int, winnerID, loserID int, correction bool) error {
	if correction && previousWinner != nil {
		if *previousWinner == winnerID {
			// Same winner, only the score line changed.
			return nil
		}
		prevLoser := winnerID
		if err := s.playerRepo.RevertMatchResult(ctx, tx, *previousWinner, true); err != nil {
			return err
		}
		if err := s.playerRepo.RevertMatchResult(ctx, tx, prevLoser, false); err != nil {
			return err
		}
	}
	if err := s.playerRepo.AddMatchResult(ctx, tx, winnerID, true); err != nil {
		return err
	}
	return s.playerRepo.AddMatchResult(ctx, tx, loserID, false)
}

// advanceBracket pushes the winner (and loser, in double elimination)
// into the linked successor slots.
func (s *matchService) advanceBracket(ctx context.Context, tx repositories.SQLExecutor, match *models.Match, winnerID, loserID int) error {
	if match.NextMatchID != nil && match.WinnerToSlot != nil {
		if err := s.matchRepo.UpdateSlot(ctx, tx, *match.NextMatchID, *match.WinnerToSlot, &winnerID); err != nil {
			return err
		}
	}
	if match.LoserMatchID != nil && match.LoserToSlot != nil {
		if err := s.matchRepo.UpdateSlot(ctx, tx, *match.LoserMatchID, *match.LoserToSlot, &loserID); err != nil {
			return err
		}
	}
	return nil
}

func (s *matchService) broadcastMatch(tournamentID int, match *models.Match) {
	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), brackets.Event{
		Type:    brackets.EventMatchUpdated,
		Payload: match,
	})
}

func parseTerminal(input ReportScoreInput) (scoring.TerminalState, *scoring.Side, error) {
	var terminal scoring.TerminalState
	switch input.Terminal {
	case "", "normal":
		return scoring.TerminalNormal, nil, nil
	case "retired":
		terminal = scoring.TerminalRetired
	case "defaulted":
		terminal = scoring.TerminalDefaulted
	default:
		return scoring.TerminalNormal, nil, fmt.Errorf("%w: unknown terminal state %q", ErrValidationFailed, input.Terminal)
	}

	var side scoring.Side
	switch input.AtFaultSide {
	case "A", "a":
		side = scoring.SideA
	case "B", "b":
		side = scoring.SideB
	default:
		return terminal, nil, scoring.ErrFaultSideNeeded
	}
	return terminal, &side, nil
}
