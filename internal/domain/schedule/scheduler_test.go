package schedule

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/team"
)

// 2026-01-01 is a Thursday.
var seasonStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func makeTeams(n int) []team.Team {
	out := make([]team.Team, 0, n)
	for i := 0; i < n; i++ {
		label := string(rune('A' + i))
		out = append(out, team.Team{ID: "team-" + label, Name: label})
	}
	return out
}

func thursdayConfig(venues, slots, rest int) Config {
	return Config{
		MatchDay:                Thursday,
		StartTime:               MustTimeOfDay("19:00"),
		EndTime:                 MustTimeOfDay("21:00"),
		VenuesAvailable:         venues,
		SlotsPerVenue:           slots,
		RestWeeksBetweenMatches: rest,
	}
}

func windowWithMatchdays(n int) Window {
	return Window{
		StartDate: seasonStart,
		EndDate:   seasonStart.AddDate(0, 0, 7*(n-1)),
	}
}

func matchdayCount(fixtures []Fixture) int {
	return Summarize(fixtures).Matchdays
}

func TestGenerateFixtures_FourTeamsCapacityTwo(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateFixtures(makeTeams(4), thursdayConfig(2, 1, 0), windowWithMatchdays(10))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}
	if len(fixtures) != 12 {
		t.Fatalf("expected 12 fixtures, got %d", len(fixtures))
	}
	if got := matchdayCount(fixtures); got != 6 {
		t.Fatalf("expected 6 matchdays, got %d", got)
	}

	perMatchday := make(map[int]int)
	for _, f := range fixtures {
		perMatchday[f.Matchday]++
	}
	for md := 1; md <= 6; md++ {
		if perMatchday[md] != 2 {
			t.Fatalf("expected 2 fixtures on matchday %d, got %d", md, perMatchday[md])
		}
	}
}

func TestGenerateFixtures_FourTeamsCapacityOne(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateFixtures(makeTeams(4), thursdayConfig(1, 1, 0), windowWithMatchdays(12))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}
	if len(fixtures) != 12 {
		t.Fatalf("expected 12 fixtures, got %d", len(fixtures))
	}
	if got := matchdayCount(fixtures); got != 12 {
		t.Fatalf("expected 12 matchdays, got %d", got)
	}
	for i, f := range fixtures {
		if f.Matchday != i+1 || f.VenueSlot != 0 {
			t.Fatalf("unexpected placement for fixture %d: %+v", i, f)
		}
	}
}

func TestGenerateFixtures_OddTeamCountRotatesBye(t *testing.T) {
	t.Parallel()

	teams := makeTeams(3)
	fixtures, err := GenerateFixtures(teams, thursdayConfig(1, 1, 0), windowWithMatchdays(10))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}
	if len(fixtures) != 6 {
		t.Fatalf("expected 6 fixtures, got %d", len(fixtures))
	}

	byes := make(map[string]int)
	for md := 1; md <= 6; md++ {
		playing := make(map[string]bool)
		for _, f := range fixtures {
			if f.Matchday == md {
				playing[f.Home.ID] = true
				playing[f.Away.ID] = true
			}
		}
		if len(playing) != 2 {
			t.Fatalf("expected exactly one team sitting out on matchday %d, playing=%v", md, playing)
		}
		for _, tm := range teams {
			if !playing[tm.ID] {
				byes[tm.ID]++
			}
		}
	}
	for _, tm := range teams {
		if byes[tm.ID] != 2 {
			t.Fatalf("expected team %s to sit out twice, got %d", tm.ID, byes[tm.ID])
		}
	}
}

func TestDoubleRoundRobin_SecondHalfMirrorsFirst(t *testing.T) {
	t.Parallel()

	rounds := DoubleRoundRobin(makeTeams(5))
	if len(rounds) != 10 {
		t.Fatalf("expected 10 rounds, got %d", len(rounds))
	}
	for r := 0; r < 5; r++ {
		first, second := rounds[r], rounds[r+5]
		if second.Number != first.Number+5 {
			t.Fatalf("unexpected mirrored round number: %d vs %d", second.Number, first.Number)
		}
		if first.Bye == nil || second.Bye == nil || first.Bye.ID != second.Bye.ID {
			t.Fatalf("expected matching byes in round %d", first.Number)
		}
		for i := range first.Pairings {
			if first.Pairings[i].Home.ID != second.Pairings[i].Away.ID ||
				first.Pairings[i].Away.ID != second.Pairings[i].Home.ID {
				t.Fatalf("round %d pairing %d not mirrored", first.Number, i)
			}
		}
	}
}

func TestGenerateFixtures_TwoTeams(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateFixtures(makeTeams(2), thursdayConfig(3, 2, 0), windowWithMatchdays(4))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].Home.ID != fixtures[1].Away.ID || fixtures[0].Away.ID != fixtures[1].Home.ID {
		t.Fatalf("expected reversed home/away, got %+v", fixtures)
	}
}

func TestGenerateFixtures_WindowTooShortFailsFast(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateFixtures(makeTeams(4), thursdayConfig(2, 1, 0), windowWithMatchdays(5))
	if fixtures != nil {
		t.Fatalf("expected no fixtures, got %d", len(fixtures))
	}
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}

	var infeasibleErr *InfeasibleError
	if !errors.As(err, &infeasibleErr) {
		t.Fatalf("expected InfeasibleError, got %T", err)
	}
	if infeasibleErr.Unplaced != 12 || infeasibleErr.Placed != 0 {
		t.Fatalf("unexpected counts: %+v", infeasibleErr)
	}
	if infeasibleErr.RequiredMatchdays != 6 || infeasibleErr.AvailableMatchdays != 5 {
		t.Fatalf("unexpected matchday counts: %+v", infeasibleErr)
	}
	if want := seasonStart.AddDate(0, 0, 28); !infeasibleErr.LastDate.Equal(want) {
		t.Fatalf("unexpected last date: got=%s want=%s", infeasibleErr.LastDate, want)
	}
	if len(crerr.GetAllHints(err)) == 0 {
		t.Fatalf("expected remedy hint on infeasible error")
	}
}

func TestGenerateFixtures_ExhaustedDuringPlacement(t *testing.T) {
	t.Parallel()

	// Three teams resting one matchday can only play every other date, so the
	// sixth fixture needs an eleventh date.
	cfg := thursdayConfig(1, 1, 1)
	if got := RequiredMatchdays(3, cfg); got != 7 {
		t.Fatalf("unexpected lower bound: %d", got)
	}

	fixtures, err := GenerateFixtures(makeTeams(3), cfg, windowWithMatchdays(10))
	if fixtures != nil {
		t.Fatalf("expected no fixtures on failure, got %d", len(fixtures))
	}
	var infeasibleErr *InfeasibleError
	if !errors.As(err, &infeasibleErr) {
		t.Fatalf("expected InfeasibleError, got %v", err)
	}
	if infeasibleErr.Unplaced != 1 || infeasibleErr.Placed != 5 {
		t.Fatalf("unexpected counts: %+v", infeasibleErr)
	}

	fixtures, err = GenerateFixtures(makeTeams(3), cfg, windowWithMatchdays(11))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}
	wantMatchdays := []int{1, 3, 5, 7, 9, 11}
	for i, f := range fixtures {
		if f.Matchday != wantMatchdays[i] {
			t.Fatalf("fixture %d: matchday got=%d want=%d", i, f.Matchday, wantMatchdays[i])
		}
	}
}

func TestGenerateFixtures_Properties(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 9; n++ {
		for rest := 0; rest <= 2; rest++ {
			for _, venues := range []int{1, 2, 4} {
				n, rest, venues := n, rest, venues
				t.Run(fmt.Sprintf("n=%d/rest=%d/venues=%d", n, rest, venues), func(t *testing.T) {
					t.Parallel()

					teams := makeTeams(n)
					cfg := thursdayConfig(venues, 1, rest)
					fixtures, err := GenerateFixtures(teams, cfg, windowWithMatchdays(400))
					if err != nil {
						t.Fatalf("GenerateFixtures error: %v", err)
					}
					assertScheduleProperties(t, teams, cfg, fixtures)
				})
			}
		}
	}
}

func assertScheduleProperties(t *testing.T, teams []team.Team, cfg Config, fixtures []Fixture) {
	t.Helper()

	if len(fixtures) != ExpectedFixtureCount(len(teams)) {
		t.Fatalf("expected %d fixtures, got %d", ExpectedFixtureCount(len(teams)), len(fixtures))
	}

	ordered := make(map[string]int)
	perMatchday := make(map[int]int)
	appearances := make(map[string][]int)
	for _, f := range fixtures {
		if f.Home.ID == f.Away.ID {
			t.Fatalf("team plays itself: %+v", f)
		}
		ordered[f.Home.ID+">"+f.Away.ID]++
		perMatchday[f.Matchday]++
		if f.VenueSlot < 0 || f.VenueSlot >= cfg.CapacityPerMatchday() {
			t.Fatalf("venue slot out of range: %+v", f)
		}
		appearances[f.Home.ID] = append(appearances[f.Home.ID], f.Matchday)
		appearances[f.Away.ID] = append(appearances[f.Away.ID], f.Matchday)
	}

	for i := range teams {
		for j := range teams {
			if i == j {
				continue
			}
			if got := ordered[teams[i].ID+">"+teams[j].ID]; got != 1 {
				t.Fatalf("expected exactly one %s vs %s, got %d", teams[i].ID, teams[j].ID, got)
			}
		}
	}
	for md, count := range perMatchday {
		if count > cfg.CapacityPerMatchday() {
			t.Fatalf("matchday %d over capacity: %d", md, count)
		}
	}
	for id, mds := range appearances {
		for k := 1; k < len(mds); k++ {
			if mds[k]-mds[k-1] <= cfg.RestWeeksBetweenMatches {
				t.Fatalf("team %s gap %d..%d violates rest %d", id, mds[k-1], mds[k], cfg.RestWeeksBetweenMatches)
			}
		}
	}
}

func TestGenerateFixtures_Deterministic(t *testing.T) {
	t.Parallel()

	teams := makeTeams(7)
	cfg := thursdayConfig(2, 2, 1)
	window := windowWithMatchdays(60)

	first, err := GenerateFixtures(teams, cfg, window)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := GenerateFixtures(teams, cfg, window)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical schedules")
	}
}

func TestGenerateFixtures_KickoffSpreadAcrossSittings(t *testing.T) {
	t.Parallel()

	fixtures, err := GenerateFixtures(makeTeams(4), thursdayConfig(1, 2, 0), windowWithMatchdays(6))
	if err != nil {
		t.Fatalf("GenerateFixtures error: %v", err)
	}

	first, second := fixtures[0], fixtures[1]
	if first.Matchday != 1 || second.Matchday != 1 {
		t.Fatalf("expected both opening pairings on matchday 1: %+v %+v", first, second)
	}
	if want := time.Date(2026, 1, 1, 19, 0, 0, 0, time.UTC); !first.KickoffAt.Equal(want) {
		t.Fatalf("unexpected first kickoff: %s", first.KickoffAt)
	}
	if want := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC); !second.KickoffAt.Equal(want) {
		t.Fatalf("unexpected second kickoff: %s", second.KickoffAt)
	}
	if first.Venue != 1 || second.Venue != 1 || first.Sitting != 0 || second.Sitting != 1 {
		t.Fatalf("unexpected venue assignment: %+v %+v", first, second)
	}
}

func TestGenerateFixtures_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		teams  []team.Team
		cfg    Config
		window Window
		want   error
	}{
		{
			name:   "missing match day",
			teams:  makeTeams(4),
			cfg:    Config{StartTime: MustTimeOfDay("19:00"), EndTime: MustTimeOfDay("21:00"), VenuesAvailable: 1, SlotsPerVenue: 1},
			window: windowWithMatchdays(12),
			want:   ErrInvalidConfiguration,
		},
		{
			name:   "end before start",
			teams:  makeTeams(4),
			cfg:    Config{MatchDay: Thursday, StartTime: MustTimeOfDay("21:00"), EndTime: MustTimeOfDay("19:00"), VenuesAvailable: 1, SlotsPerVenue: 1},
			window: windowWithMatchdays(12),
			want:   ErrInvalidConfiguration,
		},
		{
			name:   "zero venues",
			teams:  makeTeams(4),
			cfg:    thursdayConfig(0, 1, 0),
			window: windowWithMatchdays(12),
			want:   ErrInvalidConfiguration,
		},
		{
			name:   "negative rest",
			teams:  makeTeams(4),
			cfg:    thursdayConfig(1, 1, -1),
			window: windowWithMatchdays(12),
			want:   ErrInvalidConfiguration,
		},
		{
			name:   "window reversed",
			teams:  makeTeams(4),
			cfg:    thursdayConfig(1, 1, 0),
			window: Window{StartDate: seasonStart, EndDate: seasonStart.AddDate(0, 0, -1)},
			want:   ErrInvalidConfiguration,
		},
		{
			name:   "single team",
			teams:  makeTeams(1),
			cfg:    thursdayConfig(1, 1, 0),
			window: windowWithMatchdays(12),
			want:   ErrDegenerateInput,
		},
		{
			name:   "duplicate team",
			teams:  []team.Team{{ID: "a", Name: "A"}, {ID: "a", Name: "A again"}},
			cfg:    thursdayConfig(1, 1, 0),
			window: windowWithMatchdays(12),
			want:   ErrDegenerateInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fixtures, err := GenerateFixtures(tc.teams, tc.cfg, tc.window)
			if fixtures != nil {
				t.Fatalf("expected no fixtures, got %d", len(fixtures))
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	err := Config{}.Validate()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}

	fields := make(map[string]bool)
	for _, v := range cfgErr.Violations {
		fields[v.Field] = true
	}
	for _, want := range []string{"MatchDay", "StartTime", "EndTime", "VenuesAvailable", "SlotsPerVenue"} {
		if !fields[want] {
			t.Fatalf("expected violation for %s, got %+v", want, cfgErr.Violations)
		}
	}
}
