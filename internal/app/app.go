package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abodsh/edufiles/internal/config"
	"github.com/abodsh/edufiles/internal/domain"
	"github.com/abodsh/edufiles/internal/httpserver"
	"github.com/abodsh/edufiles/internal/httpserver/deps"
	"github.com/abodsh/edufiles/internal/index"
	"github.com/abodsh/edufiles/internal/logger"
	"github.com/abodsh/edufiles/internal/redis"
	"github.com/abodsh/edufiles/internal/scheduler"
	"github.com/abodsh/edufiles/internal/session"
	"github.com/abodsh/edufiles/internal/sources/seedfile"
	redisstore "github.com/abodsh/edufiles/internal/store/redis"
	"github.com/abodsh/edufiles/internal/utils"
	"github.com/abodsh/edufiles/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	refresher   *scheduler.Refresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early and fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// First-run seed: the YAML file when configured, else the built-in one
	seed := domain.Seed
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured", logger.String("file", cfg.SeedFile))
		seedCfg, err := seedfile.NewLoader(cfg.SeedFile).Load()
		if err != nil {
			loggerClient.Errorf("Failed to read seed file: %v", err)
			os.Exit(1)
		}
		seeded, err := seedfile.NewMapper().MapCatalog(seedCfg)
		if err != nil {
			loggerClient.Errorf("Failed to map seed file: %v", err)
			os.Exit(1)
		}
		seed = func() *domain.Catalog { return seeded }
	}

	catalogStore := redisstore.NewStore(redisClient, redisstore.Options{
		Seed:       seed,
		SessionTTL: cfg.SessionTTL,
	})

	snapshot := index.NewSnapshot()
	guard := session.NewGuard(catalogStore, catalogStore)

	// Manual refresh trigger channel
	refreshTrigger := make(chan struct{}, 1)

	refresher := scheduler.NewRefresher(
		catalogStore,
		snapshot,
		loggerClient,
		cfg.RefreshInterval,
		refreshTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Catalog:        catalogStore,
		Sessions:       catalogStore,
		Guard:          guard,
		Snapshot:       snapshot,
		RedisClient:    redisClient,
		RefreshTrigger: refreshTrigger,
		SessionTTL:     cfg.SessionTTL,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting edufiles %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("edufiles %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the catalog refresher; the initial load seeds the store on
	// first run, so a failure here means Redis holds a bad document.
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog refresher: %w", err)
	}
	a.logger.Info("catalog refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	utils.Close(a.redisClient, a.logger, "redis client")

	a.logger.Info("edufiles stopped cleanly")
	return nil
}
