package memory

import (
	"context"
	"sort"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		items[item.ID] = cloneSeason(item)
	}
	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return crerr.Newf("season %s already exists", item.ID)
	}
	r.items[item.ID] = cloneSeason(item)
	return nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}
	return cloneSeason(item), true, nil
}

func (r *SeasonRepository) ListByLeague(_ context.Context, leagueID string) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, item := range r.items {
		if item.LeagueID == leagueID {
			out = append(out, cloneSeason(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Window.StartDate.Equal(out[j].Window.StartDate) {
			return out[i].Window.StartDate.Before(out[j].Window.StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SeasonRepository) UpdateScheduling(_ context.Context, seasonID string, cfg schedule.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[seasonID]
	if !ok {
		return crerr.Newf("season %s not found", seasonID)
	}
	item.Scheduling = cfg
	r.items[seasonID] = item
	return nil
}

func (r *SeasonRepository) UpdateFixturesState(_ context.Context, seasonID string, state season.FixturesState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[seasonID]
	if !ok {
		return crerr.Newf("season %s not found", seasonID)
	}
	item.FixturesStatus = season.NormalizeFixturesStatus(state.Status)
	item.FixturesGeneratedAt = cloneTime(state.GeneratedAt)
	item.TotalMatchesPlanned = state.TotalMatchesPlanned
	r.items[seasonID] = item
	return nil
}

func (r *SeasonRepository) BeginFixturesGeneration(_ context.Context, seasonID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[seasonID]
	if !ok {
		return false, crerr.Newf("season %s not found", seasonID)
	}
	if !season.CanBeginGeneration(item.FixturesStatus) {
		return false, nil
	}
	item.FixturesStatus = season.FixturesGenerating
	item.FixturesGeneratedAt = nil
	item.TotalMatchesPlanned = 0
	r.items[seasonID] = item
	return true, nil
}

func cloneSeason(item season.Season) season.Season {
	item.TieBreakers = append(item.TieBreakers[:0:0], item.TieBreakers...)
	item.FixturesGeneratedAt = cloneTime(item.FixturesGeneratedAt)
	return item
}
