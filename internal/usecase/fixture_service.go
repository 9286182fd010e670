package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/schedule"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/observability"
	idgen "github.com/riskibarqy/matchday/internal/platform/id"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

// FixturePlan is the scheduler output for a season. Preview and commit build
// it the same way.
type FixturePlan struct {
	SeasonID string
	Teams    int
	Fixtures []schedule.Fixture
	Summary  schedule.Summary
	Message  string
}

type CommitResult struct {
	Plan     FixturePlan
	Fixtures []fixture.Fixture
}

type RecordResultInput struct {
	SeasonID  string
	FixtureID string
	HomeScore int
	AwayScore int
}

type FixtureService struct {
	seasonRepo  season.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewFixtureService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		seasonRepo:  seasonRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *FixtureService) PreviewFixtures(ctx context.Context, seasonID string) (FixturePlan, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.PreviewFixtures")
	defer span.End()

	item, err := s.season(ctx, seasonID)
	if err != nil {
		return FixturePlan{}, err
	}

	plan, err := s.plan(ctx, item)
	if err != nil {
		return FixturePlan{}, err
	}
	plan.Message = fmt.Sprintf("Preview: %d fixtures across %d matchdays", plan.Summary.Fixtures, plan.Summary.Matchdays)
	return plan, nil
}

// CommitFixtures generates and stores the full schedule. It refuses when the
// season already has fixtures; delete them first to regenerate.
func (s *FixtureService) CommitFixtures(ctx context.Context, seasonID string) (CommitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.CommitFixtures")
	defer span.End()

	item, err := s.season(ctx, seasonID)
	if err != nil {
		return CommitResult{}, err
	}

	count, err := s.fixtureRepo.CountBySeason(ctx, item.ID)
	if err != nil {
		return CommitResult{}, fmt.Errorf("count fixtures: %w", err)
	}
	if count > 0 {
		return CommitResult{}, fmt.Errorf("%w: season=%s already has %d fixtures, delete them first", ErrConflict, item.ID, count)
	}

	started, err := s.seasonRepo.BeginFixturesGeneration(ctx, item.ID)
	if err != nil {
		return CommitResult{}, fmt.Errorf("mark fixtures generating: %w", err)
	}
	if !started {
		return CommitResult{}, fmt.Errorf("%w: season=%s fixtures are already being generated or stored", ErrConflict, item.ID)
	}

	plan, err := s.plan(ctx, item)
	if err != nil {
		s.markFailed(ctx, item.ID, err)
		return CommitResult{}, err
	}

	records := make([]fixture.Fixture, 0, len(plan.Fixtures))
	for _, scheduled := range plan.Fixtures {
		fixtureID, err := s.idGen.NewID()
		if err != nil {
			s.markFailed(ctx, item.ID, err)
			return CommitResult{}, fmt.Errorf("generate fixture id: %w", err)
		}
		records = append(records, fixture.FromScheduled(fixtureID, item.ID, scheduled))
	}

	if err := s.fixtureRepo.CreateBatch(ctx, item.ID, records); err != nil {
		if errors.Is(err, fixture.ErrAlreadyExists) {
			s.release(ctx, item)
			return CommitResult{}, fmt.Errorf("%w: season=%s fixtures were generated concurrently", ErrConflict, item.ID)
		}
		s.markFailed(ctx, item.ID, err)
		return CommitResult{}, fmt.Errorf("store fixtures: %w", err)
	}

	generatedAt := s.now().UTC()
	if err := s.seasonRepo.UpdateFixturesState(ctx, item.ID, season.FixturesState{
		Status:              season.FixturesCompleted,
		GeneratedAt:         &generatedAt,
		TotalMatchesPlanned: len(records),
	}); err != nil {
		return CommitResult{}, fmt.Errorf("mark fixtures completed: %w", err)
	}

	plan.Message = fmt.Sprintf("Generated %d fixtures across %d matchdays", plan.Summary.Fixtures, plan.Summary.Matchdays)
	s.logger.InfoContext(ctx, "fixtures committed",
		"season_id", item.ID,
		"fixtures", plan.Summary.Fixtures,
		"matchdays", plan.Summary.Matchdays,
	)
	return CommitResult{Plan: plan, Fixtures: records}, nil
}

func (s *FixtureService) DeleteFixtures(ctx context.Context, seasonID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.DeleteFixtures")
	defer span.End()

	item, err := s.season(ctx, seasonID)
	if err != nil {
		return 0, err
	}

	deleted, err := s.fixtureRepo.DeleteBySeason(ctx, item.ID)
	if err != nil {
		return 0, fmt.Errorf("delete fixtures: %w", err)
	}
	if err := s.seasonRepo.UpdateFixturesState(ctx, item.ID, season.FixturesState{Status: season.FixturesPending}); err != nil {
		return 0, fmt.Errorf("reset fixtures state: %w", err)
	}

	s.logger.InfoContext(ctx, "fixtures deleted", "season_id", item.ID, "deleted", deleted)
	return deleted, nil
}

func (s *FixtureService) ListFixtures(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures")
	defer span.End()

	item, err := s.season(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	items, err := s.fixtureRepo.ListBySeason(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return items, nil
}

func (s *FixtureService) RecordResult(ctx context.Context, input RecordResultInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.RecordResult")
	defer span.End()

	if input.HomeScore < 0 || input.AwayScore < 0 {
		return fixture.Fixture{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}
	fixtureID := strings.TrimSpace(input.FixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, err := s.season(ctx, input.SeasonID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	current, exists, err := s.fixtureRepo.GetByID(ctx, item.ID, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	if fixture.IsCancelledStatus(current.Status) {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s is cancelled", ErrConflict, fixtureID)
	}

	completedAt := s.now().UTC()
	score := fixture.Score{
		HomeScore:   input.HomeScore,
		AwayScore:   input.AwayScore,
		CompletedAt: completedAt,
	}
	if err := s.fixtureRepo.RecordResult(ctx, item.ID, fixtureID, score); err != nil {
		return fixture.Fixture{}, fmt.Errorf("record result: %w", err)
	}

	home, away := input.HomeScore, input.AwayScore
	current.HomeScore = &home
	current.AwayScore = &away
	current.Status = fixture.StatusCompleted
	current.CompletedAt = &completedAt

	s.logger.InfoContext(ctx, "fixture result recorded",
		"season_id", item.ID,
		"fixture_id", fixtureID,
		"home_score", home,
		"away_score", away,
	)
	return current, nil
}

func (s *FixtureService) season(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	return loadSeason(ctx, s.seasonRepo, seasonID)
}

func (s *FixtureService) plan(ctx context.Context, item season.Season) (FixturePlan, error) {
	teams, err := activeTeams(ctx, s.teamRepo, item.ID)
	if err != nil {
		return FixturePlan{}, err
	}

	fixtures, err := schedule.GenerateFixtures(teams, item.Scheduling, item.Window)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture generation rejected",
			"season_id", item.ID,
			"teams", len(teams),
			"error", err,
		)
		return FixturePlan{}, fmt.Errorf("generate fixtures: %w", err)
	}

	return FixturePlan{
		SeasonID: item.ID,
		Teams:    len(teams),
		Fixtures: fixtures,
		Summary:  schedule.Summarize(fixtures),
	}, nil
}

// release puts back the state the season had before this commit claimed it.
func (s *FixtureService) release(ctx context.Context, item season.Season) {
	if err := s.seasonRepo.UpdateFixturesState(ctx, item.ID, season.FixturesState{
		Status:              item.FixturesStatus,
		GeneratedAt:         item.FixturesGeneratedAt,
		TotalMatchesPlanned: item.TotalMatchesPlanned,
	}); err != nil {
		s.logger.ErrorContext(ctx, "release fixtures state failed", "season_id", item.ID, "error", err)
	}
}

func (s *FixtureService) markFailed(ctx context.Context, seasonID string, cause error) {
	observability.RecordError(ctx, cause)
	if err := s.seasonRepo.UpdateFixturesState(ctx, seasonID, season.FixturesState{Status: season.FixturesError}); err != nil {
		s.logger.ErrorContext(ctx, "mark fixtures error failed",
			"season_id", seasonID,
			"cause", cause,
			"error", err,
		)
	}
}
