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
	"github.com/riskibarqy/matchday/internal/domain/standings"
	idgen "github.com/riskibarqy/matchday/internal/platform/id"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

// CreateSeasonInput leaves standings settings nil to take the league defaults.
// Scheduling is optional at creation but validated in full when supplied.
type CreateSeasonInput struct {
	LeagueID    string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Scheduling  *schedule.Config
	Points      *standings.PointSystem
	TieBreakers []standings.TieBreaker
	FormWindow  int
}

type SeasonService struct {
	seasonRepo  season.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewSeasonService(
	seasonRepo season.Repository,
	fixtureRepo fixture.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		seasonRepo:  seasonRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SeasonService) CreateSeason(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.CreateSeason")
	defer span.End()

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	defaults := standings.DefaultOptions()
	now := s.now().UTC()
	item := season.Season{
		ID:       seasonID,
		LeagueID: strings.TrimSpace(input.LeagueID),
		Name:     strings.TrimSpace(input.Name),
		Window: schedule.Window{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		},
		Points:         defaults.Points,
		TieBreakers:    defaults.TieBreakers,
		FormWindow:     defaults.FormWindow,
		FixturesStatus: season.FixturesPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Points != nil {
		item.Points = *input.Points
	}
	if input.TieBreakers != nil {
		item.TieBreakers = append([]standings.TieBreaker(nil), input.TieBreakers...)
	}
	if input.FormWindow != 0 {
		item.FormWindow = input.FormWindow
	}
	if input.Scheduling != nil {
		if err := input.Scheduling.Validate(); err != nil {
			return season.Season{}, err
		}
		item.Scheduling = *input.Scheduling
	}

	if err := item.Validate(); err != nil {
		if errors.Is(err, schedule.ErrInvalidConfiguration) || errors.Is(err, standings.ErrInvalidOptions) {
			return season.Season{}, err
		}
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Create(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.logger.InfoContext(ctx, "season created",
		"season_id", item.ID,
		"league_id", item.LeagueID,
		"has_scheduling", item.HasSchedulingConfig(),
	)
	return item, nil
}

func (s *SeasonService) GetSeason(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	return loadSeason(ctx, s.seasonRepo, seasonID)
}

func (s *SeasonService) ListLeagueSeasons(ctx context.Context, leagueID string) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListLeagueSeasons")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	items, err := s.seasonRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

// SchedulingView is the current scheduling config plus whether it can still change.
type SchedulingView struct {
	SeasonID     string
	Config       schedule.Config
	Configured   bool
	Locked       bool
	FixtureCount int
}

func (s *SeasonService) GetSchedulingConfig(ctx context.Context, seasonID string) (SchedulingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetSchedulingConfig")
	defer span.End()

	item, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return SchedulingView{}, err
	}

	count, err := s.fixtureRepo.CountBySeason(ctx, item.ID)
	if err != nil {
		return SchedulingView{}, fmt.Errorf("count fixtures: %w", err)
	}

	return SchedulingView{
		SeasonID:     item.ID,
		Config:       item.Scheduling,
		Configured:   item.HasSchedulingConfig(),
		Locked:       count > 0,
		FixtureCount: count,
	}, nil
}

// UpdateSchedulingConfig replaces the whole config. It is refused once any
// fixture exists for the season.
func (s *SeasonService) UpdateSchedulingConfig(ctx context.Context, seasonID string, cfg schedule.Config) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.UpdateSchedulingConfig")
	defer span.End()

	item, err := s.GetSeason(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}
	if err := cfg.Validate(); err != nil {
		return season.Season{}, err
	}

	count, err := s.fixtureRepo.CountBySeason(ctx, item.ID)
	if err != nil {
		return season.Season{}, fmt.Errorf("count fixtures: %w", err)
	}
	if count > 0 {
		return season.Season{}, fmt.Errorf(
			"%w: cannot modify scheduling configuration after fixtures have been generated, delete %d existing fixtures first",
			ErrConflict,
			count,
		)
	}

	if err := s.seasonRepo.UpdateScheduling(ctx, item.ID, cfg); err != nil {
		return season.Season{}, fmt.Errorf("update scheduling config: %w", err)
	}

	item.Scheduling = cfg
	item.UpdatedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "season scheduling updated",
		"season_id", item.ID,
		"match_day", cfg.MatchDay.String(),
		"capacity_per_matchday", cfg.CapacityPerMatchday(),
		"rest_weeks", cfg.RestWeeksBetweenMatches,
	)
	return item, nil
}
