package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/rolewithai/internal/config"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/index"
	"github.com/MrSnakeDoc/rolewithai/internal/insight"
	"github.com/MrSnakeDoc/rolewithai/internal/ledger"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/profile"
	"github.com/MrSnakeDoc/rolewithai/internal/redis"
	"github.com/MrSnakeDoc/rolewithai/internal/reports"
	"github.com/MrSnakeDoc/rolewithai/internal/scheduler"
	"github.com/MrSnakeDoc/rolewithai/internal/scoring"
	"github.com/MrSnakeDoc/rolewithai/internal/signals"
	"github.com/MrSnakeDoc/rolewithai/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/rolewithai/internal/store/redis"
	"github.com/MrSnakeDoc/rolewithai/internal/utils"
	"github.com/MrSnakeDoc/rolewithai/internal/version"
)

const startupTimeout = 30 * time.Second

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reportStore *postgres.ReportStore
	gemini      *insight.GeminiModel
	ledgerIndex *index.LedgerIndex
	sweeper     *scheduler.Sweeper
	importer    *scheduler.LedgerImporter
	pruner      *scheduler.ReportPruner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Redis backs the score cache, ledger persistence and profiles. Without it
	// everything runs from memory unless RWAI_REDIS_REQUIRED is set.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(ctx, redis.OptionsFromConfig(cfg), loggerClient)
	if err != nil {
		if cfg.RedisRequired {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Warn("redis unavailable, running memory-only", logger.Error(err))
		redisClient = nil
	} else {
		loggerClient.Info("Redis initialized successfully")
	}

	ledgerIndex := index.NewLedgerIndex()

	var (
		scoreCache   scoring.Cache
		scoreLookup  ledger.ScoreLookup
		scoreDropper reports.ScoreInvalidator
		persister    ledger.Persister
		profileStore profile.Store = profile.NewMemoryStore()
	)
	if redisClient != nil {
		store := redisstore.NewStore(redisClient)
		scoreCache, scoreLookup, scoreDropper, persister = store, store, store, store
		profileStore = redisstore.NewProfileStore(store)

		// Try to sync ledgers from Redis to memory on startup
		syncer := scheduler.NewRedisSyncer(store, ledgerIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to sync ledgers from redis on startup, starting empty",
				logger.Error(err))
		}
	}

	// Postgres holds community reports. It is optional: response rates fall
	// back to their default and reports are acknowledged without storage.
	var (
		reportStore *postgres.ReportStore
		reportSink  reports.Store
		stats       signals.ReportStats
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			loggerClient.Warn("postgres unavailable, community reports disabled", logger.Error(err))
		} else {
			reportStore = postgres.NewReportStore(pool)
			if err := reportStore.EnsureSchema(ctx); err != nil {
				loggerClient.Errorf("Failed to apply report schema: %v", err)
				os.Exit(1)
			}
			reportSink, stats = reportStore, reportStore
			loggerClient.Info("Postgres initialized successfully")
		}
	} else {
		loggerClient.Info("database not configured, community reports disabled")
	}

	var search signals.Searcher
	if cfg.TavilyAPIKey != "" {
		search = signals.NewTavilyClient(cfg.TavilyAPIKey, cfg.TavilyBaseURL, cfg.SearchTimeout, loggerClient)
	} else {
		loggerClient.Info("tavily not configured, ghost signal uses its default")
	}

	var (
		gemini  *insight.GeminiModel
		primary insight.Generator
	)
	if cfg.GeminiAPIKey != "" {
		gemini, err = insight.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			loggerClient.Warn("gemini unavailable, insights use templates", logger.Error(err))
			gemini = nil
		} else {
			primary = insight.NewLLMGenerator(gemini)
		}
	} else {
		loggerClient.Info("gemini not configured, insights use templates")
	}

	profiles := profile.NewService(profileStore, loggerClient)

	scoringSvc := scoring.NewService(scoring.Options{
		Cache:    scoreCache,
		Signals:  signals.NewService(stats, search, loggerClient),
		Insights: insight.NewResilient(primary, cfg.InsightTimeout, loggerClient),
		CacheTTL: cfg.ScoreCacheTTL,
		Logger:   loggerClient,
	})
	ledgerSvc := ledger.NewService(ledgerIndex, persister, scoreLookup, loggerClient)
	reportSvc := reports.NewService(reportSink, profiles, scoreDropper, loggerClient)

	sweepTrigger := make(chan struct{}, 1)
	sweeper := scheduler.NewSweeper(ledgerSvc, loggerClient, cfg.SweepInterval, sweepTrigger)

	var importer *scheduler.LedgerImporter
	if cfg.LedgerFile != "" {
		loggerClient.Info("ledger file configured, initializing ledger importer",
			logger.String("file", cfg.LedgerFile))
		importer = scheduler.NewLedgerImporter(cfg.LedgerFile, cfg.LedgerUser, ledgerSvc, loggerClient, cfg.ImportInterval)
	}

	var pruner *scheduler.ReportPruner
	if reportStore != nil && cfg.ReportRetention > 0 {
		pruner = scheduler.NewReportPruner(reportStore, loggerClient, cfg.PruneInterval, cfg.ReportRetention)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		ReportRateBurst:  cfg.ReportRateBurst,
		ReportRatePerMin: cfg.ReportRatePerMin,
		DefaultStrategy:  cfg.DefaultStrategy,
		RedisClient:      redisClient,
		TavilyOn:         search != nil,
		LedgerIndex:      ledgerIndex,
		Scoring:          scoringSvc,
		Ledger:           ledgerSvc,
		Profiles:         profiles,
		Reports:          reportSvc,
		SweepTrigger:     sweepTrigger,
	}
	if reportStore != nil {
		d.Postgres = reportStore
	}
	if gemini != nil {
		d.GeminiModel = gemini.Name()
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reportStore: reportStore,
		gemini:      gemini,
		ledgerIndex: ledgerIndex,
		sweeper:     sweeper,
		importer:    importer,
		pruner:      pruner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting RoleWithAI v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Import the seed file before the first sweep so it is automated at once
	if a.importer != nil {
		if err := a.importer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start ledger importer: %w", err)
		}
		a.logger.Info("ledger importer started",
			logger.Duration("interval", a.cfg.ImportInterval))
	}

	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ledger sweeper: %w", err)
	}
	a.logger.Info("ledger sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval),
		logger.Int("entries", a.ledgerIndex.Count()))

	if a.pruner != nil {
		if err := a.pruner.Start(ctx); err != nil {
			return fmt.Errorf("failed to start report pruner: %w", err)
		}
		a.logger.Info("report pruner started",
			logger.Duration("interval", a.cfg.PruneInterval),
			logger.Duration("retention", a.cfg.ReportRetention))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.stopSchedulers()
		return err
	}

	a.stopSchedulers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}
	if a.reportStore != nil {
		a.reportStore.Close()
		a.logger.Info("✅ Postgres closed cleanly")
	}
	if a.gemini != nil {
		utils.MustClose(a.gemini, a.logger, "gemini client")
	}

	a.logger.Info("✅ RoleWithAI stopped cleanly")
	return nil
}

func (a *App) stopSchedulers() {
	if a.importer != nil {
		a.importer.Stop()
	}
	a.sweeper.Stop()
	if a.pruner != nil {
		a.pruner.Stop()
	}
}
