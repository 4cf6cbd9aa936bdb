// Package formats projects a tournament's configuration onto the
// ordered list of standings views that apply to it. It is a pure
// lookup: no I/O, no side effects, and unknown format tags simply
// produce no view so callers can degrade to "format not supported".
package formats

import (
	"sort"

	"github.com/michae1michae1/tennis-backend/models"
)

// View is one standings surface to aggregate and render: the format
// plus the rules of the phase it came from. PhaseID is zero for the
// synthetic view of a tournament with no configured phases.
type View struct {
	PhaseID  int              `json:"phase_id,omitempty"`
	Format   models.FormatTag `json:"format"`
	Rules    []models.Rule    `json:"rules,omitempty"`
	Position int              `json:"position"`
}

// Known reports whether the tag names a format the engine can
// aggregate.
func Known(tag models.FormatTag) bool {
	switch tag {
	case models.FormatLadder,
		models.FormatRoundRobin,
		models.FormatSingleElimination,
		models.FormatDoubleElimination,
		models.FormatSwiss,
		models.FormatGroupStage:
		return true
	}
	return false
}

// Classify returns the standings views for a tournament in configured
// phase order. A non-custom tournament yields exactly one view; a
// custom tournament yields one per phase with a known format. A
// tournament whose own tag is unknown yields nothing.
func Classify(t *models.Tournament) []View {
	if t == nil {
		return nil
	}

	if t.Format != models.FormatCustom {
		if !Known(t.Format) {
			return nil
		}
		view := View{Format: t.Format, Position: 1}
		// A single-format tournament may still carry one phase with
		// its rules; prefer that phase's configuration.
		if len(t.Phases) > 0 {
			view.PhaseID = t.Phases[0].ID
			view.Rules = t.Phases[0].Rules
			view.Position = t.Phases[0].Position
		}
		return []View{view}
	}

	phases := make([]models.Phase, len(t.Phases))
	copy(phases, t.Phases)
	sort.SliceStable(phases, func(i, j int) bool {
		return phases[i].Position < phases[j].Position
	})

	views := make([]View, 0, len(phases))
	for _, p := range phases {
		if !Known(p.Format) {
			continue
		}
		views = append(views, View{
			PhaseID:  p.ID,
			Format:   p.Format,
			Rules:    p.Rules,
			Position: p.Position,
		})
	}
	return views
}
