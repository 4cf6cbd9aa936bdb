package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/michae1michae1/tennis-backend/formats"
	"github.com/michae1michae1/tennis-backend/models"
	"github.com/michae1michae1/tennis-backend/repositories"
	"github.com/michae1michae1/tennis-backend/scoring"
	"github.com/michae1michae1/tennis-backend/standings"
)

// StandingsView is one rendered standings surface: the classifier view
// plus its persisted rows.
type StandingsView struct {
	PhaseID  int               `json:"phase_id"`
	Format   models.FormatTag  `json:"format"`
	Position int               `json:"position"`
	Rows     []models.Standing `json:"rows"`
}

type StandingsService interface {
	// TournamentStandings returns the ordered standings views of a
	// tournament, one per classified phase.
	TournamentStandings(ctx context.Context, tournamentID int) ([]StandingsView, error)
	// RecomputePhase rebuilds a phase's standings snapshot from its
	// roster and completed matches. Runs on the caller's executor so a
	// score report can recompute inside its transaction.
	RecomputePhase(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase) error
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	phaseRepo      repositories.PhaseRepository
	rosterRepo     repositories.RosterRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.StandingRepository
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	phaseRepo repositories.PhaseRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		phaseRepo:      phaseRepo,
		rosterRepo:     rosterRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
	}
}

func (s *standingsService) TournamentStandings(ctx context.Context, tournamentID int) ([]StandingsView, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	phases, err := s.phaseRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range phases {
		rules, err := models.ParseRules(phases[i].RulesJSON)
		if err != nil {
			return nil, fmt.Errorf("phase %d has malformed rules: %w", phases[i].ID, err)
		}
		phases[i].Rules = rules
	}
	tournament.Phases = phases

	byPhase := make(map[int][]models.Standing)
	rows, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		byPhase[row.PhaseID] = append(byPhase[row.PhaseID], row)
	}

	views := make([]StandingsView, 0)
	for _, view := range formats.Classify(tournament) {
		views = append(views, StandingsView{
			PhaseID:  view.PhaseID,
			Format:   view.Format,
			Position: view.Position,
			Rows:     byPhase[view.PhaseID],
		})
	}
	return views, nil
}

func (s *standingsService) RecomputePhase(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase) error {
	entries, err := s.rosterRepo.ListByTournament(ctx, exec, tournament.ID)
	if err != nil {
		return err
	}
	matches, err := s.matchRepo.ListByPhase(ctx, exec, phase.ID)
	if err != nil {
		return err
	}

	computed, err := computePhaseStandings(phase, entries, matches)
	if err != nil {
		return err
	}

	rows := make([]models.Standing, len(computed))
	for i, e := range computed {
		rows[i] = models.Standing{
			TournamentID:  tournament.ID,
			PhaseID:       phase.ID,
			PlayerID:      e.PlayerID,
			Rank:          e.Rank,
			Points:        e.Points,
			Wins:          e.Wins,
			Losses:        e.Losses,
			MatchesPlayed: e.MatchesPlayed,
		}
	}
	return s.standingRepo.ReplaceForPhase(ctx, exec, phase.ID, rows)
}

// computePhaseStandings is the pure core of the recompute: it adapts
// the stored rows into engine inputs and dispatches on the phase
// format.
func computePhaseStandings(phase *models.Phase, entries []models.RosterEntry, matches []models.Match) ([]standings.Entry, error) {
	if phase.Rules == nil && phase.RulesJSON != nil {
		rules, err := models.ParseRules(phase.RulesJSON)
		if err != nil {
			return nil, fmt.Errorf("phase %d has malformed rules: %w", phase.ID, err)
		}
		phase.Rules = rules
	}

	roster := rosterPlayers(entries)
	results, err := matchResults(matches)
	if err != nil {
		return nil, err
	}

	switch phase.Format {
	case models.FormatRoundRobin:
		return standings.ComputeRoundRobin(roster, results), nil
	case models.FormatLadder:
		return standings.ComputeLadder(roster, results), nil
	case models.FormatSingleElimination:
		return standings.ComputeElimination(roster, results, eliminationRounds(len(roster))), nil
	case models.FormatDoubleElimination:
		// Grand final sits at play-order round 3n-1 (see the bracket
		// layout); losing earlier rounds ranks by that same scale.
		return standings.ComputeElimination(roster, results, 3*eliminationRounds(len(roster))-1), nil
	case models.FormatSwiss:
		return standings.ComputeSwiss(roster, results), nil
	case models.FormatGroupStage:
		return standings.ComputeGroupStage(roster, results, groupCount(len(roster))), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, phase.Format)
}

// rosterPlayers keeps registration order and only registered entries.
// A zero seed falls back to the registration position so an unseeded
// field still has a deterministic order.
func rosterPlayers(entries []models.RosterEntry) []standings.RosterPlayer {
	roster := make([]standings.RosterPlayer, 0, len(entries))
	for _, e := range entries {
		if e.Status != models.RosterRegistered {
			continue
		}
		seed := e.Seed
		if seed == 0 {
			seed = len(roster) + 1
		}
		roster = append(roster, standings.RosterPlayer{PlayerID: e.PlayerID, Seed: seed})
	}
	return roster
}

// matchResults converts completed matches in round then id order. For
// the ladder replay id order is challenge-issue order: the replay
// applies challenges in the order they were recorded, not the order
// their scores came in. A completed match with no second occupant is a
// persisted bye row and becomes a walkover win.
func matchResults(matches []models.Match) ([]standings.MatchResult, error) {
	results := make([]standings.MatchResult, 0, len(matches))
	for _, m := range matches {
		if m.Status != models.MatchCompleted || m.WinnerID == nil || m.P1ID == nil {
			continue
		}
		if m.P2ID == nil {
			result := standings.MatchResult{P1ID: *m.P1ID, WinnerID: *m.WinnerID, Bye: true}
			if m.Round != nil {
				result.Round = *m.Round
			}
			results = append(results, result)
			continue
		}
		result := standings.MatchResult{
			P1ID:     *m.P1ID,
			P2ID:     *m.P2ID,
			WinnerID: *m.WinnerID,
		}
		if m.Round != nil {
			result.Round = *m.Round
		}
		if m.Score != nil {
			sets, err := scoring.ParseSets(*m.Score)
			if err != nil {
				return nil, fmt.Errorf("match %d has malformed stored score %q: %w", m.ID, *m.Score, err)
			}
			result.GamesP1, result.GamesP2 = scoring.GamesWon(sets)
		}
		results = append(results, result)
	}
	return results, nil
}

// eliminationRounds is the number of winners-bracket rounds needed to
// reduce n players to a champion.
func eliminationRounds(n int) int {
	rounds := 0
	for size := 1; size < n; size *= 2 {
		rounds++
	}
	return rounds
}

// groupCount targets groups of four, never fewer than one group.
func groupCount(n int) int {
	count := (n + 3) / 4
	if count < 1 {
		count = 1
	}
	return count
}
