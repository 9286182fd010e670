package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/fixture"
)

type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesBySeason map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesBySeason := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesBySeason[item.SeasonID] = append(fixturesBySeason[item.SeasonID], cloneFixture(item))
	}

	return &FixtureRepository{fixturesBySeason: fixturesBySeason}
}

func (r *FixtureRepository) ListBySeason(_ context.Context, seasonID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesBySeason[seasonID]
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFixture(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Matchday != out[j].Matchday {
			return out[i].Matchday < out[j].Matchday
		}
		return out[i].VenueSlot < out[j].VenueSlot
	})
	return out, nil
}

func (r *FixtureRepository) CountBySeason(_ context.Context, seasonID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fixturesBySeason[seasonID]), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, seasonID, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.fixturesBySeason[seasonID] {
		if item.ID == fixtureID {
			return cloneFixture(item), true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) CreateBatch(_ context.Context, seasonID string, items []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.fixturesBySeason[seasonID]) > 0 {
		return fixture.ErrAlreadyExists
	}

	rows := make([]fixture.Fixture, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.SeasonID != seasonID {
			return crerr.Newf("fixture %s belongs to season %s, not %s", item.ID, item.SeasonID, seasonID)
		}
		if _, dup := seen[item.ID]; dup {
			return crerr.Newf("duplicate fixture id %s", item.ID)
		}
		seen[item.ID] = struct{}{}
		item.Status = fixture.NormalizeStatus(item.Status)
		rows = append(rows, cloneFixture(item))
	}

	r.fixturesBySeason[seasonID] = rows
	return nil
}

func (r *FixtureRepository) DeleteBySeason(_ context.Context, seasonID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := len(r.fixturesBySeason[seasonID])
	delete(r.fixturesBySeason, seasonID)
	return deleted, nil
}

func (r *FixtureRepository) RecordResult(_ context.Context, seasonID, fixtureID string, score fixture.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.fixturesBySeason[seasonID]
	for idx := range rows {
		if rows[idx].ID != fixtureID {
			continue
		}
		home, away := score.HomeScore, score.AwayScore
		completedAt := score.CompletedAt
		rows[idx].HomeScore = &home
		rows[idx].AwayScore = &away
		rows[idx].CompletedAt = &completedAt
		rows[idx].Status = fixture.StatusCompleted
		return nil
	}
	return crerr.Newf("fixture %s not found in season %s", fixtureID, seasonID)
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	item.HomeScore = cloneInt(item.HomeScore)
	item.AwayScore = cloneInt(item.AwayScore)
	item.CompletedAt = cloneTime(item.CompletedAt)
	return item
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
