package fixture

import (
	"context"
	"time"
)

// Score is a final result for one fixture.
type Score struct {
	HomeScore   int
	AwayScore   int
	CompletedAt time.Time
}

// Repository exposes fixture persistence.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Fixture, error)
	CountBySeason(ctx context.Context, seasonID string) (int, error)
	GetByID(ctx context.Context, seasonID, fixtureID string) (Fixture, bool, error)
	// CreateBatch stores every fixture or none. It fails with ErrAlreadyExists
	// when the season already has fixtures.
	CreateBatch(ctx context.Context, seasonID string, items []Fixture) error
	DeleteBySeason(ctx context.Context, seasonID string) (int, error)
	RecordResult(ctx context.Context, seasonID, fixtureID string, score Score) error
}
