package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	cacherepo "github.com/riskibarqy/league-standings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-standings/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

// App holds the HTTP server and the resources it must release on shutdown.
type App struct {
	Server *http.Server
	closer func() error
}

func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer()
}

type repositories struct {
	runner    uow.Runner
	matches   match.Repository
	seasons   season.Repository
	teams     team.Repository
	standings standing.Repository
	closer    func() error
	// rebuild asks for a full recompute of every season before serving.
	rebuild bool
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	seasonRepo := repos.seasons
	teamRepo := repos.teams
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		seasonRepo = cacherepo.NewSeasonRepository(seasonRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
	}

	coordinator := usecase.NewStandingsCoordinator(logger)
	matchSvc := usecase.NewMatchService(repos.runner, repos.matches, seasonRepo, teamRepo, coordinator, logger)
	standingSvc := usecase.NewStandingService(repos.runner, seasonRepo, teamRepo, repos.standings, coordinator, cfg.RecomputeWorkers, logger)
	reportSvc := usecase.NewReportService(repos.matches, seasonRepo, teamRepo, usecase.ReportLimits{
		FormDefault:      cfg.FormDefaultLimit,
		FormSeason:       cfg.FormSeasonLimit,
		FormMax:          cfg.FormMaxLimit,
		HeadToHeadRecent: cfg.HeadToHeadRecentLimit,
	})
	teamSvc := usecase.NewTeamService(teamRepo)

	if repos.rebuild {
		result, err := standingSvc.RecalculateAll(ctx)
		if err != nil {
			_ = closeRepositories(repos)
			return nil, fmt.Errorf("rebuild standings: %w", err)
		}
		logger.Info("standings rebuilt at startup",
			"seasons", len(result.Seasons),
			"success_count", result.SuccessCount,
			"failed_count", result.FailedCount,
		)
	}

	handler := httpapi.NewHandler(matchSvc, standingSvc, reportSvc, teamSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		closer: repos.closer,
	}, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		if cfg.SeedMemoryStore {
			store = memory.NewSeededStore()
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "seeded", cfg.SeedMemoryStore)
		return repositories{
			runner:    store,
			matches:   memory.NewMatchRepository(store),
			seasons:   memory.NewSeasonRepository(store),
			teams:     memory.NewTeamRepository(store),
			standings: memory.NewStandingRepository(store),
			rebuild:   cfg.SeedMemoryStore,
		}, nil
	case config.StorageDriverPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}

		seeded, err := postgres.BootstrapSeed(ctx, db)
		if err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "seeded", seeded)

		return repositories{
			runner:    postgres.NewTxRunner(db),
			matches:   postgres.NewMatchRepository(db),
			seasons:   postgres.NewSeasonRepository(db),
			teams:     postgres.NewTeamRepository(db),
			standings: postgres.NewStandingRepository(db),
			closer:    db.Close,
			rebuild:   seeded,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func closeRepositories(repos repositories) error {
	if repos.closer == nil {
		return nil
	}
	return repos.closer()
}
