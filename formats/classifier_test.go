package formats

import (
	"testing"

	"github.com/michae1michae1/tennis-backend/models"
)

func TestClassifySingleFormat(t *testing.T) {
	views := Classify(&models.Tournament{Format: models.FormatRoundRobin})
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Format != models.FormatRoundRobin {
		t.Fatalf("got %s", views[0].Format)
	}
}

func TestClassifyCustomPreservesOrder(t *testing.T) {
	// Summer Classic style: ladder seeding phase then elimination.
	tournament := &models.Tournament{
		Format: models.FormatCustom,
		Phases: []models.Phase{
			{ID: 12, Position: 2, Format: models.FormatSingleElimination},
			{ID: 11, Position: 1, Format: models.FormatLadder},
		},
	}
	views := Classify(tournament)
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].Format != models.FormatLadder || views[1].Format != models.FormatSingleElimination {
		t.Fatalf("views out of configured order: %+v", views)
	}
	if views[0].PhaseID != 11 {
		t.Fatalf("view not linked to its phase: %+v", views[0])
	}
}

func TestClassifySkipsUnknownFormats(t *testing.T) {
	tournament := &models.Tournament{
		Format: models.FormatCustom,
		Phases: []models.Phase{
			{ID: 1, Position: 1, Format: "kingOfTheCourt"},
			{ID: 2, Position: 2, Format: models.FormatRoundRobin},
		},
	}
	views := Classify(tournament)
	if len(views) != 1 || views[0].Format != models.FormatRoundRobin {
		t.Fatalf("unknown format must be skipped, got %+v", views)
	}
}

func TestClassifyUnknownTournamentFormat(t *testing.T) {
	if views := Classify(&models.Tournament{Format: "wallyball"}); len(views) != 0 {
		t.Fatalf("expected no views, got %+v", views)
	}
	if views := Classify(nil); views != nil {
		t.Fatalf("expected nil for nil tournament, got %+v", views)
	}
}
