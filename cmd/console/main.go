package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MichalMitros/crm-console/cmd/console/config"
	"github.com/MichalMitros/crm-console/internal/api"
	"github.com/MichalMitros/crm-console/internal/catalog"
	"github.com/MichalMitros/crm-console/internal/dashboard"
	"github.com/MichalMitros/crm-console/internal/platform"
	"github.com/MichalMitros/crm-console/internal/platform/metrics"
	"github.com/MichalMitros/crm-console/internal/platform/rabbitmq"
	"github.com/MichalMitros/crm-console/internal/platform/storage"
	"github.com/MichalMitros/crm-console/internal/platform/tokenstore"
	"github.com/MichalMitros/crm-console/internal/realtime"
	"github.com/MichalMitros/crm-console/internal/session"
	"github.com/MichalMitros/crm-console/internal/users"
	"github.com/caarlos0/env/v6"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	transport "github.com/MichalMitros/crm-console/internal/transport/http"
)

const (
	// UserAgent is user agent header value sent to CRM API.
	UserAgent = "crm-console/0.0.1"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().
			Err(err).
			Msg("can't load .env file")
	}

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse log level")
	}
	logger = logger.Level(level)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	channel := realtime.NewChannel(conn, &logger, realtime.WithMetrics(m))

	tokens, err := tokenstore.Open(cfg.TokenPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open token storage")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// login and registration don't send credentials
	sessions := session.NewStore(
		api.NewClient(httpClient, cfg.APIURL, UserAgent, api.WithMetrics(m)),
		tokens,
		&logger,
	)
	if err := sessions.Init(); err != nil {
		logger.Warn().
			Err(err).
			Msg("can't restore session")
	}

	client := api.NewClient(httpClient, cfg.APIURL, UserAgent,
		api.WithTokenSource(sessions),
		api.WithAuthScheme(api.AuthScheme(cfg.AuthScheme)),
		api.WithMetrics(m),
	)

	var pgDB *sql.DB
	dashboardOps := []dashboard.Option{dashboard.WithMonths(cfg.History.Months)}
	if cfg.DatabaseURL != "" {
		pgDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open Postgres connection")
		}

		history := storage.NewPostgres(pgDB)
		if err := history.Migrate(ctx); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't migrate stats history")
		}

		pruned, err := history.PruneStats(ctx, time.Now().Add(-cfg.History.Retention))
		if err != nil {
			logger.Error().
				Err(err).
				Msg("can't prune stats history")
		}
		logger.Debug().
			Int64("pruned", pruned).
			Msg("stats history pruned")

		dashboardOps = append(dashboardOps, dashboard.WithRecorder(history))
	}

	products := catalog.NewProductSync(client, channel, &logger,
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithDebounce(cfg.Catalog.Debounce),
		catalog.WithMetrics(m),
	)
	manager := users.NewManager(client, channel, &logger)
	stats := dashboard.NewStore(client, &logger, dashboardOps...)

	// subscribe before consuming so no event is dropped
	if err := products.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start products sync")
	}

	if err := manager.Start(ctx); err != nil {
		if errors.Is(err, platform.ErrAlreadySubscribed) {
			logger.Fatal().
				Err(err).
				Msg("can't start users manager")
		}
		logger.Warn().
			Err(err).
			Msg("users not loaded")
	}

	if err := channel.Start(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start push channel")
	}

	if err := stats.Refresh(ctx); err != nil {
		logger.Warn().
			Err(err).
			Msg("dashboard not loaded")
	}

	gin.SetMode(gin.ReleaseMode)
	server := transport.NewServer(products, catalog.NewBrowser(client, &logger), manager, stats, sessions, &logger,
		transport.WithMetrics(m),
		transport.WithMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
		transport.WithHistoryLimit(cfg.History.Limit),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("local api stopped")
			cancel()
		}
	}()

	logger.Info().
		Str("addr", cfg.HTTP.Addr).
		Msg("crm console up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("can't shut down local api")
	}

	products.Close()
	manager.Close()

	// wait for consumer to finish
	<-channel.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := tokens.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close token storage")
		}
	}()

	go func() {
		defer wg.Done()
		if err := conn.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ channel")
		}
		if err := amqpConnection.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	if pgDB != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pgDB.Close(); err != nil {
				logger.Error().
					Err(err).
					Msg("can't close Postgres connection")
			}
		}()
	}

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
