// Package planfile decodes the YAML files fixturectl works from.
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"gopkg.in/yaml.v3"
)

type teamEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type schedulingEntry struct {
	MatchDay                string `yaml:"match_day"`
	StartTime               string `yaml:"start_time"`
	EndTime                 string `yaml:"end_time"`
	VenuesAvailable         int    `yaml:"venues_available"`
	SlotsPerVenue           int    `yaml:"slots_per_venue"`
	RestWeeksBetweenMatches int    `yaml:"rest_weeks_between_matches"`
}

type planDocument struct {
	Season struct {
		Name      string `yaml:"name"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
	} `yaml:"season"`
	Scheduling schedulingEntry `yaml:"scheduling"`
	Teams      []teamEntry     `yaml:"teams"`
}

type pointsEntry struct {
	Win  int `yaml:"win"`
	Draw int `yaml:"draw"`
	Loss int `yaml:"loss"`
}

type resultEntry struct {
	ID        string `yaml:"id"`
	Home      string `yaml:"home"`
	Away      string `yaml:"away"`
	HomeScore *int   `yaml:"home_score"`
	AwayScore *int   `yaml:"away_score"`
	PlayedAt  string `yaml:"played_at"`
}

type resultsDocument struct {
	Points      *pointsEntry  `yaml:"points"`
	TieBreakers []string      `yaml:"tie_breakers"`
	FormWindow  int           `yaml:"form_window"`
	Teams       []teamEntry   `yaml:"teams"`
	Results     []resultEntry `yaml:"results"`
}

// Plan is everything GenerateFixtures needs. Scheduling fields are taken as
// written; nothing is defaulted.
type Plan struct {
	Name   string
	Teams  []team.Team
	Config schedule.Config
	Window schedule.Window
}

// Results is a table to compute. Omitted standings settings take the usual
// league defaults.
type Results struct {
	Teams   []team.Team
	Results []standings.Result
	Options standings.Options
}

func ReadPlanFile(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan file: %w", err)
	}
	return DecodePlan(bytes.NewReader(data))
}

func ReadResultsFile(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("read results file: %w", err)
	}
	return DecodeResults(bytes.NewReader(data))
}

func DecodePlan(r io.Reader) (Plan, error) {
	var doc planDocument
	if err := decodeStrict(r, &doc); err != nil {
		return Plan{}, fmt.Errorf("parse plan file: %w", err)
	}

	var violations []schedule.Violation
	window := schedule.Window{}
	if raw := strings.TrimSpace(doc.Season.StartDate); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			violations = append(violations, schedule.Violation{Field: "StartDate", Rule: "date", Message: fmt.Sprintf("invalid start date %q", raw)})
		}
		window.StartDate = parsed
	}
	if raw := strings.TrimSpace(doc.Season.EndDate); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			violations = append(violations, schedule.Violation{Field: "EndDate", Rule: "date", Message: fmt.Sprintf("invalid end date %q", raw)})
		}
		window.EndDate = parsed
	}

	cfg, err := schedule.ParseConfig(schedule.RawConfig{
		MatchDay:                doc.Scheduling.MatchDay,
		StartTime:               doc.Scheduling.StartTime,
		EndTime:                 doc.Scheduling.EndTime,
		VenuesAvailable:         doc.Scheduling.VenuesAvailable,
		SlotsPerVenue:           doc.Scheduling.SlotsPerVenue,
		RestWeeksBetweenMatches: doc.Scheduling.RestWeeksBetweenMatches,
	})
	if err != nil {
		var cfgErr *schedule.ConfigError
		if !errors.As(err, &cfgErr) {
			return Plan{}, err
		}
		violations = append(violations, cfgErr.Violations...)
	}
	if len(violations) > 0 {
		return Plan{}, &schedule.ConfigError{Violations: violations}
	}

	return Plan{
		Name:   strings.TrimSpace(doc.Season.Name),
		Teams:  toTeams(doc.Teams),
		Config: cfg,
		Window: window,
	}, nil
}

func DecodeResults(r io.Reader) (Results, error) {
	var doc resultsDocument
	if err := decodeStrict(r, &doc); err != nil {
		return Results{}, fmt.Errorf("parse results file: %w", err)
	}

	opts := standings.DefaultOptions()
	if doc.Points != nil {
		opts.Points = standings.PointSystem{Win: doc.Points.Win, Draw: doc.Points.Draw, Loss: doc.Points.Loss}
	}
	if doc.TieBreakers != nil {
		opts.TieBreakers = make([]standings.TieBreaker, 0, len(doc.TieBreakers))
		for _, tb := range doc.TieBreakers {
			opts.TieBreakers = append(opts.TieBreakers, standings.TieBreaker(strings.TrimSpace(tb)))
		}
	}
	if doc.FormWindow != 0 {
		opts.FormWindow = doc.FormWindow
	}

	results := make([]standings.Result, 0, len(doc.Results))
	for i, entry := range doc.Results {
		item := standings.Result{
			FixtureID:  entry.ID,
			HomeTeamID: strings.TrimSpace(entry.Home),
			AwayTeamID: strings.TrimSpace(entry.Away),
			HomeScore:  entry.HomeScore,
			AwayScore:  entry.AwayScore,
		}
		if item.FixtureID == "" {
			item.FixtureID = fmt.Sprintf("result-%d", i+1)
		}
		if raw := strings.TrimSpace(entry.PlayedAt); raw != "" {
			playedAt, err := parseInstant(raw)
			if err != nil {
				return Results{}, fmt.Errorf("result %d: %w", i+1, err)
			}
			item.PlayedAt = playedAt
		}
		results = append(results, item)
	}

	return Results{
		Teams:   toTeams(doc.Teams),
		Results: results,
		Options: opts,
	}, nil
}

func decodeStrict(r io.Reader, out any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func toTeams(entries []teamEntry) []team.Team {
	out := make([]team.Team, 0, len(entries))
	for _, entry := range entries {
		id := strings.TrimSpace(entry.ID)
		name := strings.TrimSpace(entry.Name)
		if id == "" {
			id = name
		}
		out = append(out, team.Team{ID: id, Name: name, Color: strings.TrimSpace(entry.Color)})
	}
	return out
}

func parseInstant(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", time.DateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid played_at %q: use RFC3339, YYYY-MM-DD HH:MM or YYYY-MM-DD", raw)
}
