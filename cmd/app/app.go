// Package main is the entry point for the fxdesk exchange-rate dashboard.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fxdesk/internal/config"
	"fxdesk/internal/provider"
	"fxdesk/internal/repository"
	"fxdesk/internal/service"
	"fxdesk/internal/session"
	"fxdesk/internal/worker"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg         *config.Config
	modes       config.Modes
	logger      *zap.SugaredLogger
	db          *sql.DB
	repo        repository.QuoteRepository
	rdbSession  *redis.Client
	rdbAsynq    *redis.Client
	asynqClient *asynq.Client
	asynqServer *asynq.Server
	asynqMux    *asynq.ServeMux
	monitor     *asynqmon.HTTPHandler
	sessions    *session.Store
	httpServer  *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		modes:  cfg.Modes(),
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases database and Redis connections
func (app *App) close() error {
	var errs []error
	if app.asynqClient != nil {
		if err := app.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynq client close: %w", err))
		}
	}
	if app.rdbAsynq != nil {
		if err := app.rdbAsynq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis asynq close: %w", err))
		}
	}
	if app.rdbSession != nil {
		if err := app.rdbSession.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis session close: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	if app.modes.Storage == config.StorageDriverMemory {
		app.repo = repository.NewMemoryQuoteRepository()
		app.logger.Warnw("Using in-memory quote store, history is lost on restart")
		return nil
	}

	db, err := repository.NewPostgresDB(&app.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to Postgres: %w", err)
	}
	app.db = db

	repo := repository.NewPostgresQuoteRepository(db, app.logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	app.repo = repo
	return nil
}

func (app *App) initSessions() error {
	if app.modes.Pages != config.Configured {
		app.logger.Warnw("redis.session_addr not set, login and dashboard pages are disabled")
		return nil
	}

	app.rdbSession = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.SessionAddr})
	if err := app.rdbSession.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to Redis (sessions, %s): %w", app.cfg.Redis.SessionAddr, err)
	}
	app.sessions = session.NewStore(app.rdbSession, time.Duration(app.cfg.Auth.SessionTTLSec)*time.Second)
	app.logger.Infow("Connected to Redis sessions", "addr", app.cfg.Redis.SessionAddr)
	return nil
}

func (app *App) initServices() error {
	recorder, err := app.newRecorder()
	if err != nil {
		return err
	}

	rateService := service.NewRateService(
		app.repo,
		newRateProvider(app.cfg, app.logger),
		newNewsSource(app.cfg, app.logger),
		recorder,
		app.logger,
	)

	app.initHTTP(rateService)
	return nil
}

func (app *App) newRecorder() (service.Recorder, error) {
	timeout := time.Duration(app.cfg.Ingest.TimeoutSec) * time.Second
	if app.modes.Ingest != config.IngestModeQueue {
		return service.NewInlineRecorder(app.repo, timeout), nil
	}

	redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}
	app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
	if err := app.rdbAsynq.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis (asynq, %s): %w", app.cfg.Redis.AsynqAddr, err)
	}
	app.asynqClient = asynq.NewClient(redisOpt)
	app.asynqServer = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: app.cfg.Ingest.Concurrency,
		Logger:      app.logger.Named("asynq"),
	})
	app.asynqMux = asynq.NewServeMux()
	app.asynqMux.HandleFunc(service.TaskTypeAppendQuote, worker.NewAppendQuoteHandler(app.repo, app.logger))
	app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr)

	return worker.NewAsynqEnqueuer(app.asynqClient, app.cfg.Ingest.MaxRetry, timeout), nil
}

func newRateProvider(cfg *config.Config, logger *zap.SugaredLogger) provider.RatesProvider {
	if cfg.AlphaVantage.APIKey == "" {
		logger.Warnw("alphavantage.api_key not set, /api/rate will answer 501")
		return nil
	}
	return provider.NewAlphaVantageProvider(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.AlphaVantage.TimeoutSec)
}

func newNewsSource(cfg *config.Config, logger *zap.SugaredLogger) provider.NewsSource {
	if cfg.News.APIKey == "" {
		logger.Warnw("news.api_key not set, /api/news will answer 501")
		return nil
	}
	return provider.NewNewsAPIClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Query, cfg.News.Language, cfg.News.PageSize, cfg.News.TimeoutSec)
}

// Run starts the HTTP server and, in queue mode, the Asynq worker, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if app.asynqServer != nil {
		g.Go(func() error {
			app.logger.Infow("Starting Asynq worker server")
			if err := app.asynqServer.Start(app.asynqMux); err != nil {
				return fmt.Errorf("asynq worker failed to start: %w", err)
			}

			<-ctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown stops intake first so queued writes drain before connections close.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if app.asynqServer != nil {
		app.asynqServer.Shutdown()
	}

	if app.monitor != nil {
		if err := app.monitor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynqmon close: %w", err))
		}
	}

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
