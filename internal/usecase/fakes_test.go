package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	"github.com/riskibarqy/matchday/internal/domain/team"
)

type sequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s%03d", g.prefix, g.next), nil
}

type fakeSeasonRepository struct {
	mu      sync.Mutex
	byID    map[string]season.Season
	states  []season.FixturesState
	updates int
}

func newFakeSeasonRepository(items ...season.Season) *fakeSeasonRepository {
	repo := &fakeSeasonRepository{byID: make(map[string]season.Season)}
	for _, item := range items {
		repo.byID[item.ID] = item
	}
	return repo
}

func (r *fakeSeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[item.ID] = item
	return nil
}

func (r *fakeSeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.byID[seasonID]
	return item, ok, nil
}

func (r *fakeSeasonRepository) ListByLeague(_ context.Context, leagueID string) ([]season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []season.Season
	for _, item := range r.byID {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeSeasonRepository) UpdateScheduling(_ context.Context, seasonID string, cfg schedule.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[seasonID]
	item.Scheduling = cfg
	r.byID[seasonID] = item
	r.updates++
	return nil
}

func (r *fakeSeasonRepository) UpdateFixturesState(_ context.Context, seasonID string, state season.FixturesState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[seasonID]
	item.FixturesStatus = state.Status
	item.FixturesGeneratedAt = state.GeneratedAt
	item.TotalMatchesPlanned = state.TotalMatchesPlanned
	r.byID[seasonID] = item
	r.states = append(r.states, state)
	return nil
}

func (r *fakeSeasonRepository) BeginFixturesGeneration(_ context.Context, seasonID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.byID[seasonID]
	if !season.CanBeginGeneration(item.FixturesStatus) {
		return false, nil
	}
	item.FixturesStatus = season.FixturesGenerating
	item.FixturesGeneratedAt = nil
	item.TotalMatchesPlanned = 0
	r.byID[seasonID] = item
	r.states = append(r.states, season.FixturesState{Status: season.FixturesGenerating})
	return true, nil
}

func (r *fakeSeasonRepository) statusOf(seasonID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[seasonID].FixturesStatus
}

type fakeTeamRepository struct {
	mu            sync.Mutex
	teams         map[string]team.Team
	registrations map[string][]team.Registration
}

func newFakeTeamRepository() *fakeTeamRepository {
	return &fakeTeamRepository{
		teams:         make(map[string]team.Team),
		registrations: make(map[string][]team.Registration),
	}
}

func (r *fakeTeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[item.ID] = item
	return nil
}

func (r *fakeTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *fakeTeamRepository) Register(_ context.Context, reg team.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.registrations[reg.SeasonID] {
		if existing.TeamID == reg.TeamID {
			return team.ErrAlreadyRegistered
		}
	}
	r.registrations[reg.SeasonID] = append(r.registrations[reg.SeasonID], reg)
	return nil
}

func (r *fakeTeamRepository) ListBySeason(_ context.Context, seasonID string) ([]team.SeasonTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]team.SeasonTeam, 0, len(r.registrations[seasonID]))
	for _, reg := range r.registrations[seasonID] {
		out = append(out, team.SeasonTeam{
			Team:         r.teams[reg.TeamID],
			Status:       reg.Status,
			RegisteredAt: reg.RegisteredAt,
		})
	}
	return out, nil
}

// enroll creates the team and registers it, spacing registrations a minute apart.
func (r *fakeTeamRepository) enroll(seasonID string, status string, names ...string) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	r.mu.Lock()
	offset := len(r.registrations[seasonID])
	r.mu.Unlock()
	for i, name := range names {
		id := "team-" + name
		_ = r.Create(context.Background(), team.Team{ID: id, Name: name})
		_ = r.Register(context.Background(), team.Registration{
			SeasonID:     seasonID,
			TeamID:       id,
			Status:       status,
			RegisteredAt: base.Add(time.Duration(offset+i) * time.Minute),
		})
	}
}

type fakeFixtureRepository struct {
	mu       sync.Mutex
	bySeason map[string][]fixture.Fixture
}

func newFakeFixtureRepository() *fakeFixtureRepository {
	return &fakeFixtureRepository{bySeason: make(map[string][]fixture.Fixture)}
}

func (r *fakeFixtureRepository) ListBySeason(_ context.Context, seasonID string) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]fixture.Fixture(nil), r.bySeason[seasonID]...), nil
}

func (r *fakeFixtureRepository) CountBySeason(_ context.Context, seasonID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bySeason[seasonID]), nil
}

func (r *fakeFixtureRepository) GetByID(_ context.Context, seasonID, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.bySeason[seasonID] {
		if item.ID == fixtureID {
			return item, true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (r *fakeFixtureRepository) CreateBatch(_ context.Context, seasonID string, items []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.bySeason[seasonID]) > 0 {
		return fixture.ErrAlreadyExists
	}
	r.bySeason[seasonID] = append([]fixture.Fixture(nil), items...)
	return nil
}

func (r *fakeFixtureRepository) DeleteBySeason(_ context.Context, seasonID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := len(r.bySeason[seasonID])
	delete(r.bySeason, seasonID)
	return deleted, nil
}

func (r *fakeFixtureRepository) RecordResult(_ context.Context, seasonID, fixtureID string, score fixture.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.bySeason[seasonID]
	for i := range items {
		if items[i].ID != fixtureID {
			continue
		}
		home, away := score.HomeScore, score.AwayScore
		completedAt := score.CompletedAt
		items[i].HomeScore = &home
		items[i].AwayScore = &away
		items[i].Status = fixture.StatusCompleted
		items[i].CompletedAt = &completedAt
		return nil
	}
	return fmt.Errorf("fixture %s not found", fixtureID)
}

// thursdaySeason starts on Thursday 2026-01-01 and spans the given number of Thursdays.
func thursdaySeason(id string, matchdays int) season.Season {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := standings.DefaultOptions()
	return season.Season{
		ID:       id,
		LeagueID: "league-1",
		Name:     "Season " + id,
		Window: schedule.Window{
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 7*(matchdays-1)),
		},
		Scheduling: schedule.Config{
			MatchDay:        schedule.Thursday,
			StartTime:       schedule.MustTimeOfDay("19:00"),
			EndTime:         schedule.MustTimeOfDay("21:00"),
			VenuesAvailable: 2,
			SlotsPerVenue:   1,
		},
		Points:         opts.Points,
		TieBreakers:    opts.TieBreakers,
		FormWindow:     opts.FormWindow,
		FixturesStatus: season.FixturesPending,
	}
}
