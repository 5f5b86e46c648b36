package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pickem-league/external/espn"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/account/jwtauth"
	cacherepo "github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pickem-league/internal/metrics"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const repositoryCacheTTL = 30 * time.Second

type repositories struct {
	leagues     league.Repository
	submissions pickem.SubmissionRepository
	seasons     standings.Repository
	close       func() error
}

// NewHTTPServer builds the API server. The returned cleanup closes the
// database when postgres storage is in use.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var (
		serviceMetrics metrics.Metrics = metrics.Noop{}
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		serviceMetrics = metrics.NewService(registry)
		metricsHandler = metrics.NewMetricsHandler(registry)
	}

	feed := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		SeasonYear: cfg.FeedSeasonYear,
		SeasonType: cfg.FeedSeasonType,
		Cache:      cache.NewStore(cfg.FeedCacheTTL, cache.WithMaxEntries(cfg.FeedCacheMaxEntries)),
		Logger:     logger.Named("espn"),
		Metrics:    serviceMetrics,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	rules := pickem.DefaultRules()
	rules.TiePolicy = cfg.ScoringTiePolicy
	opts := []usecase.Option{
		usecase.WithLogger(logger.Named("usecase")),
		usecase.WithMetrics(serviceMetrics),
		usecase.WithStoreTimeout(cfg.DBTimeout),
		usecase.WithRules(rules),
		usecase.WithTieOrder(cfg.LeaderboardTieOrder),
		usecase.WithReconcileWorkers(cfg.ReconcileWorkers),
	}

	ids := idgen.NewUUIDGenerator()
	submissionSvc := usecase.NewSubmissionService(repos.leagues, repos.submissions, repos.seasons, feed, ids, opts...)
	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.submissions, repos.seasons, submissionSvc, opts...)
	leagueSvc := usecase.NewLeagueService(repos.leagues, ids, opts...)
	gameSvc := usecase.NewGameService(feed, opts...)

	verifier, err := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger.Named("auth"))
	if err != nil {
		_ = repos.close()
		return nil, nil, fmt.Errorf("build token verifier: %w", err)
	}

	handler := httpapi.NewHandler(leagueSvc, submissionSvc, standingsSvc, gameSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, metricsHandler, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	repoCache := cache.NewStore(repositoryCacheTTL, cache.WithMaxEntries(1024))

	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory storage")
		return repositories{
			leagues:     memory.NewLeagueRepository(),
			submissions: memory.NewSubmissionRepository(),
			seasons:     memory.NewSeasonRecordRepository(),
			close:       func() error { return nil },
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("using postgres storage", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		leagues:     cacherepo.NewLeagueRepository(postgres.NewLeagueRepository(db), repoCache),
		submissions: postgres.NewSubmissionRepository(db),
		seasons:     cacherepo.NewSeasonRecordRepository(postgres.NewSeasonRecordRepository(db), repoCache),
		close:       db.Close,
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
