package season

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/schedule"
)

// FixturesState is the generation bookkeeping stored on a season.
type FixturesState struct {
	Status              string
	GeneratedAt         *time.Time
	TotalMatchesPlanned int
}

// Repository describes season persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Season) error
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Season, error)
	UpdateScheduling(ctx context.Context, seasonID string, cfg schedule.Config) error
	UpdateFixturesState(ctx context.Context, seasonID string, state FixturesState) error
	// BeginFixturesGeneration moves the season to generating only from pending
	// or error. It reports false when the season is in any other state.
	BeginFixturesGeneration(ctx context.Context, seasonID string) (bool, error)
}
