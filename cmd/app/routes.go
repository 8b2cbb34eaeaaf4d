package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"

	"fxdesk/internal/api"
	"fxdesk/internal/api/middleware"
	"fxdesk/internal/service"
)

const monitoringPath = "/monitoring"

func (app *App) initHTTP(rateService service.RateServiceInterface) {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rate", api.HandleGetRate(rateService))
		r.Get("/history", api.HandleGetHistory(rateService))
		r.Post("/delete_history", api.HandleDeleteHistory(rateService))
		r.Get("/news", api.HandleGetNews(rateService))
	})

	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(rateService, app.readinessChecks()...))

	if app.sessions != nil {
		pages := api.NewPages(app.sessions, app.cfg.Auth, app.logger)
		r.Get("/", pages.LoginForm())
		r.Post("/login", pages.Login())
		r.Get("/index", pages.Index())
		r.Get("/logout", pages.Logout())
	}

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if app.cfg.Server.ServeAsynqmon && app.asynqServer != nil {
		app.monitor = asynqmon.New(asynqmon.Options{
			RootPath:     monitoringPath,
			RedisConnOpt: asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr},
		})
		r.Mount(monitoringPath, app.monitor)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(app.cfg.AlphaVantage.TimeoutSec+10) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (app *App) readinessChecks() []api.Dependency {
	deps := []api.Dependency{{Name: "store", Ping: app.repo.Ping}}
	if app.sessions != nil {
		deps = append(deps, api.Dependency{Name: "session redis", Ping: app.sessions.Ping})
	}
	if app.rdbAsynq != nil {
		deps = append(deps, api.Dependency{Name: "asynq redis", Ping: func(ctx context.Context) error {
			return app.rdbAsynq.Ping(ctx).Err()
		}})
	}
	return deps
}
