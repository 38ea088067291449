package app

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/pfr-scraper/external/pfr"
	"github.com/riskibarqy/pfr-scraper/internal/config"
	"github.com/riskibarqy/pfr-scraper/internal/infrastructure/repository/filestore"
	"github.com/riskibarqy/pfr-scraper/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/pfr-scraper/internal/observability"
	"github.com/riskibarqy/pfr-scraper/internal/platform/cache"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"github.com/riskibarqy/pfr-scraper/internal/platform/resilience"
	"github.com/riskibarqy/pfr-scraper/internal/usecase"
)

// Runtime holds the process-wide pieces every command shares.
type Runtime struct {
	Config config.Config
	Logger *logging.Logger

	closers []func(context.Context) error
}

// NewRuntime builds the logger and starts tracing and profiling when configured.
func NewRuntime(cfg config.Config) (*Runtime, error) {
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	}).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	rt := &Runtime{Config: cfg, Logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, errors.Wrap(err, "init uptrace")
	}
	rt.onClose(shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Close(context.Background())
		return nil, errors.Wrap(err, "init pyroscope")
	}
	rt.onClose(func(context.Context) error { return stopProfiler() })

	return rt, nil
}

func (rt *Runtime) onClose(fn func(context.Context) error) {
	rt.closers = append(rt.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	rt.closers = nil
	_ = rt.Logger.Sync()
	return errs
}

// NewPageCache picks Redis when REDIS_URL is set, the in-process cache when
// PAGE_CACHE_MEMORY is on, and no cache otherwise.
func (rt *Runtime) NewPageCache(ctx context.Context) (pfr.PageCache, error) {
	cfg := rt.Config
	switch {
	case cfg.RedisURL != "":
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.PageCacheTTL)
		if err != nil {
			return nil, err
		}
		rt.onClose(func(context.Context) error { return redisCache.Close() })
		rt.Logger.Info("page cache enabled", "backend", "redis", "ttl", cfg.PageCacheTTL.String())
		return redisCache, nil
	case cfg.PageCacheMemory:
		rt.Logger.Info("page cache enabled", "backend", "memory", "ttl", cfg.PageCacheTTL.String())
		return cache.NewMemory(cfg.PageCacheTTL), nil
	default:
		return nil, nil
	}
}

// NewFetcherFactory returns a factory of independent fetch sessions that share one
// circuit breaker and one page cache.
func (rt *Runtime) NewFetcherFactory(ctx context.Context) (usecase.FetcherFactory, error) {
	cfg := rt.Config

	breaker := resilience.NewOptionalCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          cfg.FetchCircuitEnabled,
		FailureThreshold: cfg.FetchCircuitFailureCount,
		OpenTimeout:      cfg.FetchCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.FetchCircuitHalfOpenMaxReq,
	}))
	if breaker != nil {
		logger := rt.Logger
		breaker.OnTransition(func(from, to resilience.CircuitState) {
			logger.Warn("fetch circuit breaker transition", "from", string(from), "to", string(to))
		})
	}

	pageCache, err := rt.NewPageCache(ctx)
	if err != nil {
		return nil, err
	}

	// FETCH_MAX_RETRIES=0 asks for no retries, which the client spells as a negative count.
	maxRetries := cfg.FetchMaxRetries
	if maxRetries == 0 {
		maxRetries = -1
	}

	clientCfg := pfr.ClientConfig{
		BaseURL:      cfg.SiteBaseURL,
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.FetchTimeout,
		MaxRetries:   maxRetries,
		RetryBackoff: cfg.FetchRetryBackoff,
		Breaker:      breaker,
		Logger:       rt.Logger,
	}
	if pageCache != nil {
		clientCfg.Cache = pageCache
	}

	return func() (usecase.PageFetcher, error) {
		return pfr.NewClient(clientCfg)
	}, nil
}

func (rt *Runtime) NewCondenseService() *usecase.CondenseService {
	cfg := rt.Config
	return usecase.NewCondenseService(
		filestore.NewProfileStore(cfg.DataDir),
		filestore.NewGameStore(cfg.DataDir),
		filestore.NewCorpusWriter(cfg.OutputDir),
		rt.Logger,
	)
}

func (rt *Runtime) NewScrapeService(ctx context.Context) (*usecase.ScrapeService, error) {
	cfg := rt.Config

	newFetcher, err := rt.NewFetcherFactory(ctx)
	if err != nil {
		return nil, err
	}

	return usecase.NewScrapeService(
		newFetcher,
		pfr.NewParser(cfg.SiteBaseURL),
		filestore.NewProfileStore(cfg.DataDir),
		filestore.NewGameStore(cfg.DataDir),
		filestore.DataDir(cfg.DataDir),
		rt.NewCondenseService(),
		rt.Logger,
	), nil
}

// OpenDB connects to the export database named by DB_DRIVER and DB_URL.
func (rt *Runtime) OpenDB(ctx context.Context) (*sqlstore.DB, error) {
	cfg := rt.Config
	dsn := normalizeDBURL(cfg.DBDriver, cfg.DBURL, cfg.ServiceName)

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:         cfg.DBDriver,
		DSN:            dsn,
		DBName:         dbNameFromURL(cfg.DBDriver, dsn),
		QueryFormatter: formatDBQueryForTrace,
	})
	if err != nil {
		return nil, err
	}
	rt.onClose(func(context.Context) error { return db.Close() })
	rt.Logger.Info("export database connected", "driver", cfg.DBDriver)
	return db, nil
}

func (rt *Runtime) NewLoadService(ctx context.Context) (*usecase.LoadService, error) {
	db, err := rt.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewLoadService(
		filestore.NewCorpusReader(rt.Config.OutputDir),
		sqlstore.NewCorpusStore(db),
		rt.Logger,
	), nil
}

func (rt *Runtime) NewFixtureService() *usecase.FixtureService {
	return usecase.NewFixtureService(filestore.RecordFile{}, rt.Logger)
}
