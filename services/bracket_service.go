package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/michae1michae1/tennis-backend/brackets"
	"github.com/michae1michae1/tennis-backend/models"
	"github.com/michae1michae1/tennis-backend/repositories"
)

// BracketView is the persisted draw of one phase.
type BracketView struct {
	PhaseID  int              `json:"phase_id"`
	Format   models.FormatTag `json:"format"`
	Position int              `json:"position"`
	Matches  []models.Match   `json:"matches"`
}

type BracketService interface {
	// GenerateForPhase creates the draw for a phase, or the next
	// swiss round when the phase is swiss and the current round is
	// done. Organizer only.
	GenerateForPhase(ctx context.Context, tournamentID, phaseID, requesterUserID int) ([]models.Match, error)
	TournamentBracket(ctx context.Context, tournamentID int) ([]BracketView, error)
	// RebuildPhaseProgression replays a phase's recorded winners
	// through a fresh blueprint and rewrites downstream slots, used
	// after an organizer score correction.
	RebuildPhaseProgression(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase) error
}

type bracketService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	phaseRepo      repositories.PhaseRepository
	rosterRepo     repositories.RosterRepository
	matchRepo      repositories.MatchRepository
	standingsSvc   StandingsService
	hub            *brackets.Hub
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	phaseRepo repositories.PhaseRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	standingsSvc StandingsService,
	hub *brackets.Hub,
) BracketService {
	return &bracketService{
		db:             db,
		tournamentRepo: tournamentRepo,
		phaseRepo:      phaseRepo,
		rosterRepo:     rosterRepo,
		matchRepo:      matchRepo,
		standingsSvc:   standingsSvc,
		hub:            hub,
	}
}

func (s *bracketService) GenerateForPhase(ctx context.Context, tournamentID, phaseID, requesterUserID int) ([]models.Match, error) {
	tournament, phase, err := s.loadPhase(ctx, tournamentID, phaseID)
	if err != nil {
		return nil, err
	}
	if tournament.OrganizerID != requesterUserID {
		return nil, ErrOrganizerOnly
	}
	if phase.Format == models.FormatLadder {
		// Ladder play is challenge-driven; there is no draw.
		return nil, ErrFormatHasNoBracket
	}

	entries, err := s.rosterRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	seeds := rosterSeeds(entries)
	if len(seeds) < 2 {
		return nil, ErrRosterTooSmall
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.matchRepo.ListByPhase(ctx, tx, phaseID)
	if err != nil {
		return nil, err
	}

	var created []models.Match
	if phase.Format == models.FormatSwiss && len(existing) > 0 {
		created, err = s.nextSwissRound(ctx, tx, tournament, phase, seeds, existing)
	} else {
		created, err = s.freshDraw(ctx, tx, tournament, phase, seeds, existing)
	}
	if err != nil {
		return nil, err
	}

	if phase.Status == models.PhasePending {
		if err := s.phaseRepo.UpdateStatus(ctx, tx, phaseID, models.PhaseActive); err != nil {
			return nil, err
		}
	}
	if err := s.standingsSvc.RecomputePhase(ctx, tx, tournament, phase); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw: %w", err)
	}

	s.hub.BroadcastToRoom(tournamentRoom(tournamentID), brackets.Event{
		Type:    brackets.EventBracketGenerated,
		Payload: map[string]interface{}{"phase_id": phaseID, "matches": len(created)},
	})
	return created, nil
}

func (s *bracketService) freshDraw(ctx context.Context, tx repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase, seeds []brackets.Seed, existing []models.Match) ([]models.Match, error) {
	for _, m := range existing {
		if m.Status == models.MatchCompleted {
			return nil, ErrBracketAlreadyExists
		}
	}
	if len(existing) > 0 {
		if err := s.matchRepo.DeleteByPhase(ctx, tx, phase.ID); err != nil {
			return nil, err
		}
	}

	if phase.Format == models.FormatSwiss {
		field := make([]brackets.SwissPlayer, len(seeds))
		for i, seed := range seeds {
			field[i] = brackets.SwissPlayer{PlayerID: seed.PlayerID, Seed: seed.Seed}
		}
		return s.persistBracket(ctx, tx, tournament, phase, brackets.PairSwissRound(field, 1))
	}

	generator, err := generatorFor(phase.Format)
	if err != nil {
		return nil, err
	}
	bracket, err := generator.Generate(ctx, brackets.GenerateParams{PhaseID: phase.ID, Roster: seeds})
	if err != nil {
		if errors.Is(err, brackets.ErrTooFewPlayers) {
			return nil, ErrRosterTooSmall
		}
		return nil, err
	}
	return s.persistBracket(ctx, tx, tournament, phase, bracket.Matches)
}

// nextSwissRound pairs the following swiss round once every match of
// the current one has a result.
func (s *bracketService) nextSwissRound(ctx context.Context, tx repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase, seeds []brackets.Seed, existing []models.Match) ([]models.Match, error) {
	lastRound := 0
	for _, m := range existing {
		if m.Status != models.MatchCompleted && m.Status != models.MatchCancelled {
			return nil, ErrRoundInProgress
		}
		if m.Round != nil && *m.Round > lastRound {
			lastRound = *m.Round
		}
	}

	field := make([]brackets.SwissPlayer, len(seeds))
	bySeed := make(map[int]*brackets.SwissPlayer, len(seeds))
	for i, seed := range seeds {
		field[i] = brackets.SwissPlayer{PlayerID: seed.PlayerID, Seed: seed.Seed}
		bySeed[seed.PlayerID] = &field[i]
	}
	for _, m := range existing {
		if m.Status != models.MatchCompleted || m.WinnerID == nil || m.P1ID == nil {
			continue
		}
		p1 := bySeed[*m.P1ID]
		if m.P2ID == nil {
			// Bye, counted as a win with no opponent faced.
			if p1 != nil {
				p1.Wins++
			}
			continue
		}
		p2 := bySeed[*m.P2ID]
		if p1 == nil || p2 == nil {
			continue
		}
		p1.Faced = append(p1.Faced, p2.PlayerID)
		p2.Faced = append(p2.Faced, p1.PlayerID)
		if *m.WinnerID == p1.PlayerID {
			p1.Wins++
			p2.Losses++
		} else {
			p2.Wins++
			p1.Losses++
		}
	}

	paired := brackets.PairSwissRound(field, lastRound+1)
	return s.persistBracket(ctx, tx, tournament, phase, paired)
}

// persistBracket writes blueprint matches in two passes: rows first,
// then the winner/loser links between them.
func (s *bracketService) persistBracket(ctx context.Context, tx repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase, blueprint []*brackets.Match) ([]models.Match, error) {
	ordered := make([]*brackets.Match, len(blueprint))
	copy(ordered, blueprint)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].GlobalRound != ordered[j].GlobalRound {
			return ordered[i].GlobalRound < ordered[j].GlobalRound
		}
		return ordered[i].Order < ordered[j].Order
	})

	byUID := make(map[string]*models.Match, len(ordered))
	created := make([]models.Match, 0, len(ordered))
	for _, bm := range ordered {
		round := bm.GlobalRound
		uid := bm.UID
		row := &models.Match{
			TournamentID: tournament.ID,
			PhaseID:      phase.ID,
			Round:        &round,
			P1ID:         copyIntPtr(bm.A.PlayerID),
			P2ID:         copyIntPtr(bm.B.PlayerID),
			Status:       models.MatchScheduled,
			BracketUID:   &uid,
		}
		if bm.WinnerID != nil {
			// Generation-time walkover.
			row.Status = models.MatchCompleted
			row.WinnerID = copyIntPtr(bm.WinnerID)
		}
		if err := s.matchRepo.Create(ctx, tx, row); err != nil {
			return nil, err
		}
		byUID[bm.UID] = row
		created = append(created, *row)
	}

	for _, bm := range ordered {
		dest := byUID[bm.UID]
		for slotNo, slot := range []brackets.Slot{bm.A, bm.B} {
			if slot.WinnerOf != "" {
				if feeder := byUID[slot.WinnerOf]; feeder != nil {
					n := slotNo + 1
					feeder.NextMatchID = &dest.ID
					feeder.WinnerToSlot = &n
				}
			}
			if slot.LoserOf != "" {
				if feeder := byUID[slot.LoserOf]; feeder != nil {
					n := slotNo + 1
					feeder.LoserMatchID = &dest.ID
					feeder.LoserToSlot = &n
				}
			}
		}
	}
	for i := range created {
		row := byUID[*created[i].BracketUID]
		if row.NextMatchID == nil && row.LoserMatchID == nil {
			continue
		}
		if err := s.matchRepo.SetBracketLinks(ctx, tx, row); err != nil {
			return nil, err
		}
		created[i] = *row
	}
	return created, nil
}

func (s *bracketService) TournamentBracket(ctx context.Context, tournamentID int) ([]BracketView, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	phases, err := s.phaseRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	byPhase := make(map[int][]models.Match)
	for _, m := range matches {
		if m.BracketUID == nil {
			continue
		}
		byPhase[m.PhaseID] = append(byPhase[m.PhaseID], m)
	}

	views := make([]BracketView, 0)
	for _, p := range phases {
		drawn, ok := byPhase[p.ID]
		if !ok {
			continue
		}
		views = append(views, BracketView{
			PhaseID:  p.ID,
			Format:   p.Format,
			Position: p.Position,
			Matches:  drawn,
		})
	}
	return views, nil
}

func (s *bracketService) RebuildPhaseProgression(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament, phase *models.Phase) error {
	if phase.Format == models.FormatSwiss {
		// Swiss rounds carry no slot links; nothing to rewrite.
		return nil
	}
	generator, err := generatorFor(phase.Format)
	if err != nil {
		return err
	}
	entries, err := s.rosterRepo.ListByTournament(ctx, exec, tournament.ID)
	if err != nil {
		return err
	}
	bracket, err := generator.Generate(ctx, brackets.GenerateParams{PhaseID: phase.ID, Roster: rosterSeeds(entries)})
	if err != nil {
		return err
	}

	rows, err := s.matchRepo.ListByPhase(ctx, exec, phase.ID)
	if err != nil {
		return err
	}
	winners := make(map[string]int, len(rows))
	byUID := make(map[string]*models.Match, len(rows))
	for i := range rows {
		m := &rows[i]
		if m.BracketUID == nil {
			continue
		}
		byUID[*m.BracketUID] = m
		if m.Status == models.MatchCompleted && m.WinnerID != nil {
			winners[*m.BracketUID] = *m.WinnerID
		}
	}
	if err := bracket.Replay(winners); err != nil {
		return err
	}

	// Write back any slot the replay changed.
	for _, bm := range bracket.Matches {
		row := byUID[bm.UID]
		if row == nil {
			continue
		}
		for slotNo, pair := range []struct{ want, have *int }{
			{bm.A.PlayerID, row.P1ID},
			{bm.B.PlayerID, row.P2ID},
		} {
			if intPtrEqual(pair.want, pair.have) {
				continue
			}
			if err := s.matchRepo.UpdateSlot(ctx, exec, row.ID, slotNo+1, copyIntPtr(pair.want)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *bracketService) loadPhase(ctx context.Context, tournamentID, phaseID int) (*models.Tournament, *models.Phase, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}
	phase, err := s.phaseRepo.GetByID(ctx, phaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrPhaseNotFound) {
			return nil, nil, ErrPhaseNotFound
		}
		return nil, nil, err
	}
	if phase.TournamentID != tournamentID {
		return nil, nil, ErrPhaseNotInTournament
	}
	return tournament, phase, nil
}

func generatorFor(format models.FormatTag) (brackets.Generator, error) {
	switch format {
	case models.FormatSingleElimination:
		return brackets.NewSingleEliminationGenerator(), nil
	case models.FormatDoubleElimination:
		return brackets.NewDoubleEliminationGenerator(), nil
	case models.FormatRoundRobin:
		return brackets.NewRoundRobinGenerator(), nil
	case models.FormatGroupStage:
		return brackets.NewGroupStageGenerator(0), nil
	}
	return nil, ErrFormatHasNoBracket
}

// rosterSeeds mirrors the standings adapter: registered entries only,
// registration position as the fallback seed.
func rosterSeeds(entries []models.RosterEntry) []brackets.Seed {
	seeds := make([]brackets.Seed, 0, len(entries))
	for _, e := range entries {
		if e.Status != models.RosterRegistered {
			continue
		}
		seed := e.Seed
		if seed == 0 {
			seed = len(seeds) + 1
		}
		seeds = append(seeds, brackets.Seed{PlayerID: e.PlayerID, Seed: seed})
	}
	return seeds
}

func tournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament:%d", tournamentID)
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
