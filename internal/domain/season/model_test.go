package season

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/standings"
)

func validSeason() Season {
	opts := standings.DefaultOptions()
	return Season{
		ID:       "season-1",
		LeagueID: "league-1",
		Name:     "Spring 2026",
		Window: schedule.Window{
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		Points:         opts.Points,
		TieBreakers:    opts.TieBreakers,
		FormWindow:     opts.FormWindow,
		FixturesStatus: FixturesPending,
	}
}

func TestSeasonValidate(t *testing.T) {
	t.Parallel()

	if err := validSeason().Validate(); err != nil {
		t.Fatalf("expected valid season, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Season)
	}{
		{name: "missing name", mutate: func(s *Season) { s.Name = " " }},
		{name: "missing league", mutate: func(s *Season) { s.LeagueID = "" }},
		{name: "reversed window", mutate: func(s *Season) { s.Window.EndDate = s.Window.StartDate.AddDate(0, 0, -1) }},
		{name: "zero form window", mutate: func(s *Season) { s.FormWindow = 0 }},
		{name: "unknown status", mutate: func(s *Season) { s.FixturesStatus = "done" }},
	}

	for _, tc := range tests {
		item := validSeason()
		tc.mutate(&item)
		if err := item.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestHasSchedulingConfig(t *testing.T) {
	t.Parallel()

	item := validSeason()
	if item.HasSchedulingConfig() {
		t.Fatalf("expected empty scheduling config")
	}
	item.Scheduling.VenuesAvailable = 2
	if !item.HasSchedulingConfig() {
		t.Fatalf("expected scheduling config to be reported")
	}
}

func TestCanBeginGeneration(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"":                 true,
		FixturesPending:    true,
		FixturesError:      true,
		FixturesGenerating: false,
		FixturesCompleted:  false,
	}
	for status, want := range cases {
		if got := CanBeginGeneration(status); got != want {
			t.Fatalf("CanBeginGeneration(%q) = %v, want %v", status, got, want)
		}
	}
}
