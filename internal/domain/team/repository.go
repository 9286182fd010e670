package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Register(ctx context.Context, reg Registration) error
	ListBySeason(ctx context.Context, seasonID string) ([]SeasonTeam, error)
}
