package schedule

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "19:00", want: "19:00:00"},
		{raw: "07:30:15", want: "07:30:15"},
		{raw: "7:30 pm", want: "19:30:00"},
		{raw: "00:00", want: "00:00:00"},
		{raw: "25:00", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseTimeOfDay(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) error: %v", tc.raw, err)
		}
		if got.String() != tc.want || !got.IsSet() {
			t.Fatalf("ParseTimeOfDay(%q) got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestWeekdayTextRoundTrip(t *testing.T) {
	t.Parallel()

	var day Weekday
	if err := day.UnmarshalText([]byte("Sunday")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if day != Sunday || day.TimeWeekday() != time.Sunday {
		t.Fatalf("unexpected weekday: %d", day)
	}
	if err := day.UnmarshalText([]byte("someday")); err == nil {
		t.Fatalf("expected error for unknown weekday")
	}
}

func TestWindowMatchdayDates(t *testing.T) {
	t.Parallel()

	// Friday 2026-01-02 through Friday 2026-01-30.
	window := Window{
		StartDate: time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
	}

	dates := window.MatchdayDates(Monday)
	if len(dates) != 4 {
		t.Fatalf("expected 4 mondays, got %d", len(dates))
	}
	if want := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC); !dates[0].Equal(want) {
		t.Fatalf("unexpected first monday: %s", dates[0])
	}

	fridays := window.MatchdayDates(Friday)
	if len(fridays) != 5 {
		t.Fatalf("expected inclusive bounds to yield 5 fridays, got %d", len(fridays))
	}
}

func TestRequiredMatchdays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		teams int
		cfg   Config
		want  int
	}{
		{name: "even simple", teams: 4, cfg: Config{VenuesAvailable: 2, SlotsPerVenue: 1}, want: 6},
		{name: "capacity bound", teams: 4, cfg: Config{VenuesAvailable: 1, SlotsPerVenue: 1}, want: 12},
		{name: "odd padded", teams: 5, cfg: Config{VenuesAvailable: 4, SlotsPerVenue: 1}, want: 10},
		{name: "rest bound", teams: 4, cfg: Config{VenuesAvailable: 2, SlotsPerVenue: 1, RestWeeksBetweenMatches: 1}, want: 11},
		{name: "degenerate", teams: 1, cfg: Config{VenuesAvailable: 2, SlotsPerVenue: 1}, want: 0},
	}

	for _, tc := range tests {
		if got := RequiredMatchdays(tc.teams, tc.cfg); got != tc.want {
			t.Fatalf("%s: got=%d want=%d", tc.name, got, tc.want)
		}
	}
}
