package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stashlink/internal/config"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/mw"
	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/redis"
	"github.com/MrSnakeDoc/stashlink/internal/scheduler"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
	redisstore "github.com/MrSnakeDoc/stashlink/internal/store/redis"
	"github.com/MrSnakeDoc/stashlink/internal/utils"
	"github.com/MrSnakeDoc/stashlink/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	holder      *linker.Holder
	reloader    *scheduler.SettingsReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Serve documented defaults until a better snapshot is available
	holder := linker.NewHolder(settings.Defaults(time.Now()))

	// Redis is optional: it only persists settings and usage counters
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
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
			loggerClient.Warn("redis disabled for this run", logger.Error(err))
		} else {
			redisClient = client
			store = redisstore.NewStore(client)

			// Restore the last applied settings, the file reload below overrides them
			syncer := scheduler.NewRedisSyncer(store, holder, loggerClient)
			if err := syncer.Sync(context.Background()); err != nil {
				loggerClient.Warn("failed to restore settings from redis, will load from file",
					logger.Error(err))
			}
		}
	} else {
		loggerClient.Info("redis not configured, settings will not be persisted")
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewSettingsReloader(
		cfg.SettingsFile,
		store,
		holder,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		SettingsFile:  cfg.SettingsFile,
		Store:         store,
		Links:         holder,
		ReloadTrigger: reloadTrigger,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			MaxEntries:        10000,
			TrustProxy:        cfg.TrustProxy,
		},
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		holder:      holder,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting stashlink v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("stashlink %s", version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start settings reloader (loads settings.yaml and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start settings reloader: %w", err)
	}
	a.logger.Info("settings reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.String("source", a.holder.Current().Snapshot().Source))

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
		return err
	}

	// Stop reloader
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, a.logger, "Redis")
	}

	a.logger.Info("✅ stashlink stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
