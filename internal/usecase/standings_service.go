package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/standings"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultStandingsWorkers = 4

// Table is a season's standings recomputed from its full result history.
type Table struct {
	Season  season.Season
	Rows    []standings.Row
	Summary standings.Summary
}

type StandingsService struct {
	seasonRepo  season.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	workers     int
	logger      *logging.Logger
	group       singleflight.Group
}

func NewStandingsService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	workers int,
	logger *logging.Logger,
) *StandingsService {
	if workers <= 0 {
		workers = defaultStandingsWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		seasonRepo:  seasonRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		workers:     workers,
		logger:      logger,
	}
}

// SeasonStandings shares one computation between concurrent callers asking
// for the same season. The shared work is detached from any single caller's
// cancellation; each caller still stops waiting when its own ctx ends.
func (s *StandingsService) SeasonStandings(ctx context.Context, seasonID string) (Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.SeasonStandings")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return Table{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	detached := context.WithoutCancel(ctx)
	pending := s.group.DoChan(seasonID, func() (any, error) {
		return s.compute(detached, seasonID)
	})

	select {
	case <-ctx.Done():
		return Table{}, ctx.Err()
	case res := <-pending:
		if res.Err != nil {
			return Table{}, res.Err
		}
		table := res.Val.(Table)
		if res.Shared {
			table.Rows = slices.Clone(table.Rows)
		}
		return table, nil
	}
}

func (s *StandingsService) LeagueStandings(ctx context.Context, leagueID string) ([]Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.LeagueStandings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	seasons, err := s.seasonRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return []Table{}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(seasons)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type seasonResult struct {
		table Table
		err   error
	}
	results := make(chan seasonResult, len(seasons))

	var workers sync.WaitGroup
	for _, item := range seasons {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			table, err := s.SeasonStandings(ctx, item.ID)
			results <- seasonResult{table: table, err: err}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	tables := make([]Table, 0, len(seasons))
	for row := range results {
		if row.err != nil {
			return nil, fmt.Errorf("compute season standings: %w", row.err)
		}
		tables = append(tables, row.table)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i].Season, tables[j].Season
		if !a.Window.StartDate.Equal(b.Window.StartDate) {
			return a.Window.StartDate.Before(b.Window.StartDate)
		}
		return a.ID < b.ID
	})
	return tables, nil
}

func (s *StandingsService) compute(ctx context.Context, seasonID string) (Table, error) {
	var (
		item     season.Season
		teams    []team.Team
		fixtures []fixture.Fixture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := loadSeason(gctx, s.seasonRepo, seasonID)
		item = loaded
		return err
	})
	g.Go(func() error {
		loaded, err := activeTeams(gctx, s.teamRepo, seasonID)
		teams = loaded
		return err
	})
	g.Go(func() error {
		loaded, err := s.fixtureRepo.ListBySeason(gctx, seasonID)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		fixtures = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return Table{}, err
	}

	results := make([]standings.Result, 0, len(fixtures))
	for _, f := range fixtures {
		results = append(results, f.Result())
	}

	rows, err := standings.ComputeWithMovement(teams, results, item.StandingsOptions())
	if err != nil {
		return Table{}, fmt.Errorf("compute standings: %w", err)
	}

	s.logger.DebugContext(ctx, "season standings computed",
		"season_id", seasonID,
		"teams", len(teams),
		"fixtures", len(fixtures),
	)
	return Table{
		Season:  item,
		Rows:    rows,
		Summary: standings.Summarize(rows),
	}, nil
}
