package guarded

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/platform/resilience"
)

// IsStorageFailure counts everything except cancellation and the conflicts a
// healthy backend is expected to report.
func IsStorageFailure(err error) bool {
	if !resilience.DefaultFailureClassifier(err) {
		return false
	}
	switch {
	case errors.Is(err, fixture.ErrAlreadyExists),
		errors.Is(err, team.ErrAlreadyRegistered):
		return false
	default:
		return true
	}
}

func guard(b *resilience.CircuitBreaker, fn func() error) error {
	err := b.Execute(fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%s storage: %w", b.Name(), err)
	}
	return err
}

type TeamRepository struct {
	next    team.Repository
	breaker *resilience.CircuitBreaker
}

func NewTeamRepository(next team.Repository, breaker *resilience.CircuitBreaker) *TeamRepository {
	return &TeamRepository{next: next, breaker: breaker}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	return guard(r.breaker, func() error {
		return r.next.Create(ctx, item)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	var (
		item   team.Team
		exists bool
	)
	err := guard(r.breaker, func() error {
		var err error
		item, exists, err = r.next.GetByID(ctx, teamID)
		return err
	})
	return item, exists, err
}

func (r *TeamRepository) Register(ctx context.Context, reg team.Registration) error {
	return guard(r.breaker, func() error {
		return r.next.Register(ctx, reg)
	})
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID string) ([]team.SeasonTeam, error) {
	var items []team.SeasonTeam
	err := guard(r.breaker, func() error {
		var err error
		items, err = r.next.ListBySeason(ctx, seasonID)
		return err
	})
	return items, err
}

type SeasonRepository struct {
	next    season.Repository
	breaker *resilience.CircuitBreaker
}

func NewSeasonRepository(next season.Repository, breaker *resilience.CircuitBreaker) *SeasonRepository {
	return &SeasonRepository{next: next, breaker: breaker}
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	return guard(r.breaker, func() error {
		return r.next.Create(ctx, item)
	})
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	var (
		item   season.Season
		exists bool
	)
	err := guard(r.breaker, func() error {
		var err error
		item, exists, err = r.next.GetByID(ctx, seasonID)
		return err
	})
	return item, exists, err
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]season.Season, error) {
	var items []season.Season
	err := guard(r.breaker, func() error {
		var err error
		items, err = r.next.ListByLeague(ctx, leagueID)
		return err
	})
	return items, err
}

func (r *SeasonRepository) UpdateScheduling(ctx context.Context, seasonID string, cfg schedule.Config) error {
	return guard(r.breaker, func() error {
		return r.next.UpdateScheduling(ctx, seasonID, cfg)
	})
}

func (r *SeasonRepository) UpdateFixturesState(ctx context.Context, seasonID string, state season.FixturesState) error {
	return guard(r.breaker, func() error {
		return r.next.UpdateFixturesState(ctx, seasonID, state)
	})
}

func (r *SeasonRepository) BeginFixturesGeneration(ctx context.Context, seasonID string) (bool, error) {
	var started bool
	err := guard(r.breaker, func() error {
		var err error
		started, err = r.next.BeginFixturesGeneration(ctx, seasonID)
		return err
	})
	return started, err
}

type FixtureRepository struct {
	next    fixture.Repository
	breaker *resilience.CircuitBreaker
}

func NewFixtureRepository(next fixture.Repository, breaker *resilience.CircuitBreaker) *FixtureRepository {
	return &FixtureRepository{next: next, breaker: breaker}
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	var items []fixture.Fixture
	err := guard(r.breaker, func() error {
		var err error
		items, err = r.next.ListBySeason(ctx, seasonID)
		return err
	})
	return items, err
}

func (r *FixtureRepository) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	var count int
	err := guard(r.breaker, func() error {
		var err error
		count, err = r.next.CountBySeason(ctx, seasonID)
		return err
	})
	return count, err
}

func (r *FixtureRepository) GetByID(ctx context.Context, seasonID, fixtureID string) (fixture.Fixture, bool, error) {
	var (
		item   fixture.Fixture
		exists bool
	)
	err := guard(r.breaker, func() error {
		var err error
		item, exists, err = r.next.GetByID(ctx, seasonID, fixtureID)
		return err
	})
	return item, exists, err
}

func (r *FixtureRepository) CreateBatch(ctx context.Context, seasonID string, items []fixture.Fixture) error {
	return guard(r.breaker, func() error {
		return r.next.CreateBatch(ctx, seasonID, items)
	})
}

func (r *FixtureRepository) DeleteBySeason(ctx context.Context, seasonID string) (int, error) {
	var deleted int
	err := guard(r.breaker, func() error {
		var err error
		deleted, err = r.next.DeleteBySeason(ctx, seasonID)
		return err
	})
	return deleted, err
}

func (r *FixtureRepository) RecordResult(ctx context.Context, seasonID, fixtureID string, score fixture.Score) error {
	return guard(r.breaker, func() error {
		return r.next.RecordResult(ctx, seasonID, fixtureID, score)
	})
}
