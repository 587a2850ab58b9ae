package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/teamsync/internal/config"
	"github.com/riskibarqy/teamsync/internal/dataset"
	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	"github.com/riskibarqy/teamsync/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/teamsync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/teamsync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/teamsync/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/teamsync/internal/interfaces/httpapi"
	"github.com/riskibarqy/teamsync/internal/platform/cache"
	idgen "github.com/riskibarqy/teamsync/internal/platform/id"
	"github.com/riskibarqy/teamsync/internal/platform/logging"
	"github.com/riskibarqy/teamsync/internal/platform/resilience"
	"github.com/riskibarqy/teamsync/internal/usecase"
)

// App owns the HTTP server and the resources it depends on.
type App struct {
	Server *http.Server
	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	users    user.Repository
	teams    team.Repository
	fixtures fixture.Repository
	rosters  roster.Repository
	stats    teamstats.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}
	repos, err := a.buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	fixtureSvc := usecase.NewFixtureService(
		repos.users,
		repos.teams,
		repos.fixtures,
		repos.rosters,
		repos.stats,
		usecase.WithRecentMaxCount(cfg.RecentMaxCount),
	)

	router := httpapi.NewRouter(httpapi.NewHandler(fixtureSvc, logger), httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Auth:               buildAuth(cfg, logger),
		RequestIDs:         idgen.NewUUIDGenerator("req"),
		Logger:             logger,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return a, nil
}

// Shutdown stops the HTTP server and releases the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if a.Server != nil {
		shutdownErr = a.Server.Shutdown(ctx)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && shutdownErr == nil {
			shutdownErr = fmt.Errorf("close database: %w", err)
		}
	}
	return shutdownErr
}

func (a *App) buildRepositories(cfg config.Config) (repositories, error) {
	var repos repositories

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		ds, err := loadDataset(cfg.DatasetPath, time.Now())
		if err != nil {
			return repositories{}, err
		}
		mem := memory.NewRepositories(ds)
		repos = repositories{
			users:    mem.Users,
			teams:    mem.Teams,
			fixtures: mem.Fixtures,
			rosters:  mem.Rosters,
			stats:    mem.TeamStats,
		}
		a.logger.Info("memory store ready",
			"fixtures", len(ds.Fixtures),
			"roster_members", len(ds.Rosters),
		)
	default:
		db, err := OpenDB(cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		repos = repositories{
			users:    postgres.NewUserRepository(db),
			teams:    postgres.NewTeamRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			rosters:  postgres.NewRosterRepository(db),
			stats:    postgres.NewTeamStatsRepository(db),
		}
		a.logger.Info("postgres store ready", "db_name", dbNameFromURL(cfg.DBURL))
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.users = cacherepo.NewUserRepository(repos.users, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.stats = cacherepo.NewTeamStatsRepository(repos.stats, store)
	}

	return repos, nil
}

// OpenDB opens a traced Postgres pool and verifies connectivity.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbName := dbNameFromURL(cfg.DBURL)
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func loadDataset(path string, now time.Time) (dataset.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return dataset.Default(now)
	}
	ds, err := dataset.LoadFile(path, now)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return ds, nil
}

func buildAuth(cfg config.Config, logger *logging.Logger) httpapi.Middleware {
	if cfg.AuthMode == config.AuthModeStatic {
		logger.Warn("static identity enabled", "email", cfg.AuthStaticEmail)
		return httpapi.StaticIdentity(cfg.AuthStaticEmail)
	}

	client := anubis.NewClient(&http.Client{Timeout: cfg.AnubisTimeout}, anubis.Config{
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		PrincipalTTL: cfg.CacheTTL,
	}, logger)
	return httpapi.RequireAuth(client)
}
