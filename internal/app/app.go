package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/domain/fixture"
	"github.com/riskibarqy/matchday/internal/domain/season"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday/internal/platform/dburl"
	idgen "github.com/riskibarqy/matchday/internal/platform/id"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/resilience"
	"github.com/riskibarqy/matchday/internal/usecase"
)

// App owns the HTTP server and whatever storage handle backs it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

type repositories struct {
	teams    team.Repository
	seasons  season.Repository
	fixtures fixture.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	out := &App{}
	repos, err := out.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()
	handler := httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, repos.seasons, repos.fixtures, ids, logger),
		usecase.NewSeasonService(repos.seasons, repos.fixtures, ids, logger),
		usecase.NewFixtureService(repos.seasons, repos.teams, repos.fixtures, ids, logger),
		usecase.NewStandingsService(repos.seasons, repos.teams, repos.fixtures, cfg.StandingsWorkers, logger),
		logger,
	)

	clientIP, err := httpapi.NewClientIPResolver(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("parse TRUSTED_PROXIES: %w", err)
	}
	routerCfg := httpapi.RouterConfig{
		AdminToken:         cfg.AdminToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ClientIP:           clientIP,
	}
	if cfg.RateLimitEnabled {
		routerCfg.RateLimiter = httpapi.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, clientIP)
	}
	if cfg.AdminToken == "" {
		logger.Warn("admin token not configured, mutating routes will answer 503")
	}

	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return out, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dburl.DatabaseName(cfg.DBURL), "dsn", dburl.Redact(cfg.DBURL))
		repos := repositories{
			teams:    postgres.NewTeamRepository(db),
			seasons:  postgres.NewSeasonRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
		}
		if cfg.DBCircuitBreaker.Enabled {
			repos = guardRepositories(repos, cfg.DBCircuitBreaker, logger)
		}
		return repos, nil
	default:
		logger.Info("storage ready", "driver", config.StorageMemory)
		return repositories{
			teams:    memory.NewTeamRepository(nil),
			seasons:  memory.NewSeasonRepository(nil),
			fixtures: memory.NewFixtureRepository(nil),
		}, nil
	}
}

// guardRepositories puts one breaker per table in front of postgres.
func guardRepositories(repos repositories, cfg resilience.CircuitBreakerConfig, logger *logging.Logger) repositories {
	onChange := resilience.WithStateListener(func(name string, from, to resilience.CircuitState) {
		logger.Warn("storage circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})
	newBreaker := func(name string) *resilience.CircuitBreaker {
		return resilience.NewCircuitBreaker(name, cfg, resilience.WithFailureClassifier(guarded.IsStorageFailure), onChange)
	}

	return repositories{
		teams:    guarded.NewTeamRepository(repos.teams, newBreaker("team")),
		seasons:  guarded.NewSeasonRepository(repos.seasons, newBreaker("season")),
		fixtures: guarded.NewFixtureRepository(repos.fixtures, newBreaker("fixture")),
	}
}

// Close releases the database handle, if any. Call after the server stops.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
