package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
	idgen "github.com/riskibarqy/matchday/internal/platform/id"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

type CreateTeamInput struct {
	Name  string
	Color string
}

type RegisterTeamInput struct {
	SeasonID string
	TeamID   string
	Status   string
}

type TeamService struct {
	teamRepo    team.Repository
	seasonRepo  season.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	seasonRepo season.Repository,
	fixtureRepo fixture.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:    teamRepo,
		seasonRepo:  seasonRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:    teamID,
		Name:  strings.TrimSpace(input.Name),
		Color: strings.TrimSpace(input.Color),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID)
	return item, nil
}

func (s *TeamService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (team.Registration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RegisterTeam")
	defer span.End()

	seasonID := strings.TrimSpace(input.SeasonID)
	teamID := strings.TrimSpace(input.TeamID)
	if seasonID == "" || teamID == "" {
		return team.Registration{}, fmt.Errorf("%w: season id and team id are required", ErrInvalidInput)
	}
	status := team.NormalizeStatus(input.Status)
	if !team.IsValidStatus(status) {
		return team.Registration{}, fmt.Errorf("%w: invalid registration status %q", ErrInvalidInput, input.Status)
	}

	if _, err := loadSeason(ctx, s.seasonRepo, seasonID); err != nil {
		return team.Registration{}, err
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Registration{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Registration{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	count, err := s.fixtureRepo.CountBySeason(ctx, seasonID)
	if err != nil {
		return team.Registration{}, fmt.Errorf("count fixtures: %w", err)
	}
	if count > 0 {
		return team.Registration{}, fmt.Errorf("%w: season=%s already has %d fixtures", ErrConflict, seasonID, count)
	}

	reg := team.Registration{
		SeasonID:     seasonID,
		TeamID:       teamID,
		Status:       status,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.teamRepo.Register(ctx, reg); err != nil {
		if errors.Is(err, team.ErrAlreadyRegistered) {
			return team.Registration{}, fmt.Errorf("%w: team=%s season=%s", ErrConflict, teamID, seasonID)
		}
		return team.Registration{}, fmt.Errorf("register team: %w", err)
	}

	s.logger.InfoContext(ctx, "team registered", "season_id", seasonID, "team_id", teamID, "status", status)
	return reg, nil
}

func (s *TeamService) ListSeasonTeams(ctx context.Context, seasonID string) ([]team.SeasonTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListSeasonTeams")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if _, err := loadSeason(ctx, s.seasonRepo, seasonID); err != nil {
		return nil, err
	}

	items, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season teams: %w", err)
	}
	sortSeasonTeams(items)
	return items, nil
}

// activeTeams returns registered and confirmed teams ordered by registration
// time, then id, so every storage driver feeds the scheduler the same order.
func activeTeams(ctx context.Context, repo team.Repository, seasonID string) ([]team.Team, error) {
	items, err := repo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list season teams: %w", err)
	}
	sortSeasonTeams(items)

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if team.IsActive(item.Status) {
			out = append(out, item.Team)
		}
	}
	return out, nil
}

func sortSeasonTeams(items []team.SeasonTeam) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].RegisteredAt.Equal(items[j].RegisteredAt) {
			return items[i].RegisteredAt.Before(items[j].RegisteredAt)
		}
		return items[i].Team.ID < items[j].Team.ID
	})
}

func loadSeason(ctx context.Context, repo season.Repository, seasonID string) (season.Season, error) {
	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}
