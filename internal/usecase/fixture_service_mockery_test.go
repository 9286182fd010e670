package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
	fixturemock "github.com/riskibarqy/matchday/internal/mocks/domain/fixture"
	seasonmock "github.com/riskibarqy/matchday/internal/mocks/domain/season"
	teammock "github.com/riskibarqy/matchday/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestFixtureService_CommitFixtures_ConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	service := NewFixtureService(seasonRepo, teamRepo, fixtureRepo, &sequenceIDGenerator{}, nil)
	item := thursdaySeason("s1", 10)

	seasonRepo.On("GetByID", ctx, "s1").Return(item, true, nil).Once()
	fixtureRepo.On("CountBySeason", ctx, "s1").Return(12, nil).Once()

	_, err := service.CommitFixtures(ctx, "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	seasonRepo.AssertNotCalled(t, "UpdateFixturesState", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_CommitFixtures_LostRaceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	service := NewFixtureService(seasonRepo, teamRepo, fixtureRepo, &sequenceIDGenerator{}, nil)
	item := thursdaySeason("s1", 10)

	seasonRepo.On("GetByID", ctx, "s1").Return(item, true, nil).Once()
	fixtureRepo.On("CountBySeason", ctx, "s1").Return(0, nil).Once()
	seasonRepo.On("BeginFixturesGeneration", ctx, "s1").Return(true, nil).Once()
	teamRepo.On("ListBySeason", ctx, "s1").Return([]team.SeasonTeam{
		{Team: team.Team{ID: "a", Name: "A"}, Status: team.StatusRegistered},
		{Team: team.Team{ID: "b", Name: "B"}, Status: team.StatusRegistered},
	}, nil).Once()
	fixtureRepo.
		On("CreateBatch", ctx, "s1", mock.MatchedBy(func(items []fixture.Fixture) bool { return len(items) == 2 })).
		Return(fixture.ErrAlreadyExists).
		Once()
	seasonRepo.
		On("UpdateFixturesState", ctx, "s1", mock.MatchedBy(func(state season.FixturesState) bool {
			return state.Status == season.FixturesPending && state.GeneratedAt == nil
		})).
		Return(nil).
		Once()

	_, err := service.CommitFixtures(ctx, "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestFixtureService_CommitFixtures_ClaimRefusedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)

	service := NewFixtureService(seasonRepo, teamRepo, fixtureRepo, &sequenceIDGenerator{}, nil)
	item := thursdaySeason("s1", 10)

	seasonRepo.On("GetByID", ctx, "s1").Return(item, true, nil).Once()
	fixtureRepo.On("CountBySeason", ctx, "s1").Return(0, nil).Once()
	seasonRepo.On("BeginFixturesGeneration", ctx, "s1").Return(false, nil).Once()

	_, err := service.CommitFixtures(ctx, "s1")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	seasonRepo.AssertNotCalled(t, "UpdateFixturesState", mock.Anything, mock.Anything, mock.Anything)
	fixtureRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestFixtureService_ListFixtures_SeasonNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(seasonRepo, teammock.NewRepository(t), fixtureRepo, &sequenceIDGenerator{}, nil)

	seasonRepo.On("GetByID", ctx, "missing").Return(season.Season{}, false, nil).Once()

	_, err := service.ListFixtures(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	fixtureRepo.AssertNotCalled(t, "ListBySeason", mock.Anything, mock.Anything)
}
