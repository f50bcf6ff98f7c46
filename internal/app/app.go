package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/davmoraru/wayfind/internal/cities"
	"github.com/davmoraru/wayfind/internal/config"
	"github.com/davmoraru/wayfind/internal/enrich"
	"github.com/davmoraru/wayfind/internal/geocode"
	"github.com/davmoraru/wayfind/internal/httpserver"
	"github.com/davmoraru/wayfind/internal/httpserver/deps"
	"github.com/davmoraru/wayfind/internal/logger"
	"github.com/davmoraru/wayfind/internal/notify"
	"github.com/davmoraru/wayfind/internal/push"
	"github.com/davmoraru/wayfind/internal/redis"
	"github.com/davmoraru/wayfind/internal/scheduler"
	"github.com/davmoraru/wayfind/internal/sources/rules"
	"github.com/davmoraru/wayfind/internal/state"
	redisstore "github.com/davmoraru/wayfind/internal/store/redis"
	"github.com/davmoraru/wayfind/internal/upstream"
	"github.com/davmoraru/wayfind/internal/version"
	"github.com/davmoraru/wayfind/internal/wiki"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	pushChannel push.Channel
	wsChannel   *push.WSChannel // nil when running on the in-process bus
	reloader    *scheduler.CitiesReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The lookup cache is optional: no Redis address means every lookup
	// goes straight to the providers.
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
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
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
	} else {
		loggerClient.Info("Redis not configured, lookup caching disabled")
	}

	var store *redisstore.Store
	if redisClient != nil {
		store = redisstore.NewStore(redisClient)
	}

	// Disambiguation rules: yaml file when configured, built-in table
	// otherwise.
	keywordRules, err := rules.NewLoader(cfg.RulesFile).Load()
	if err != nil {
		loggerClient.Errorf("Failed to load disambiguation rules: %v", err)
		os.Exit(1)
	}

	geocoder := geocode.New(geocode.Options{
		NominatimURL: cfg.GeocodeURL,
		PhotonURL:    cfg.PhotonURL,
		Timeout:      cfg.LookupTimeout,
	}, store, loggerClient)

	resolver := wiki.New(wiki.Options{
		APIFormat: cfg.WikiAPIFormat,
		Languages: cfg.WikiLanguages,
		MaxHits:   cfg.LookupMaxHits,
		RadiusKm:  cfg.PlausibleKm,
		Timeout:   cfg.LookupTimeout,
	}, keywordRules, store, loggerClient)

	source := upstream.New(upstream.Options{
		BaseURL: cfg.UpstreamURL,
		Timeout: cfg.UpstreamTimeout,
	})

	sessions := state.NewSessionStore()
	enricher := enrich.New(source, geocoder, resolver, sessions, enrich.Options{
		Delay:    cfg.EnrichDelay,
		Parallel: cfg.EnrichParallel,
		RadiusKm: cfg.PlausibleKm,
	}, loggerClient)

	notifier := notify.NewManager(cfg.ToastTTL, loggerClient)

	// Push channel: external WebSocket when configured, in-process bus
	// otherwise so the notification wiring stays identical.
	var channel push.Channel
	var wsChannel *push.WSChannel
	if cfg.PushURL != "" {
		wsChannel = push.NewWSChannel(cfg.PushURL, loggerClient)
		channel = wsChannel
	} else {
		loggerClient.Info("push URL not configured, using in-process bus")
		channel = push.NewBus()
	}
	channel.Subscribe(cfg.PushAlertTopic, func(payload string) {
		notifier.OnMessage(payload)
	})

	cityIndex := cities.NewIndex()
	reloadTrigger := make(chan struct{}, 1)
	reloader := scheduler.NewCitiesReloader(
		source,
		cityIndex,
		loggerClient,
		cfg.CitiesReloadInterval,
		reloadTrigger,
	)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		RateLimitBurst:    cfg.RateLimitBurst,
		RateLimitPerMin:   cfg.RateLimitPerMin,
		Sessions:          sessions,
		Enricher:          enricher,
		Geocoder:          geocoder,
		Upstream:          source,
		Cities:            cityIndex,
		Notifier:          notifier,
		Push:              channel,
		PushLocationTopic: cfg.PushLocationTopic,
		Cache:             store,
		ReloadTrigger:     reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		pushChannel: channel,
		wsChannel:   wsChannel,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Wayfind v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Wayfind %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start city list reloader: %w", err)
	}
	a.logger.Info("city list reloader started",
		logger.Duration("interval", a.cfg.CitiesReloadInterval))

	// The push link is best effort: the service stays useful without
	// live alerts.
	if a.wsChannel != nil {
		if err := a.wsChannel.Connect(ctx); err != nil {
			a.logger.Warn("push channel connect failed, continuing without live alerts",
				logger.Error(err))
		} else {
			a.logger.Info("push channel connected",
				logger.String("url", a.cfg.PushURL))
		}
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
		return err
	}

	a.reloader.Stop()

	if err := a.pushChannel.Close(); err != nil {
		a.logger.Warnf("failed to close push channel: %v", err)
	}

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

	a.logger.Info("✅ Wayfind stopped cleanly")
	return nil
}
