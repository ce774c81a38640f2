package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "EstatePulse/internal/domain/repository"
	"EstatePulse/internal/service/ws"
	"EstatePulse/pkg/cache"
	"EstatePulse/pkg/config"
	xhttp "EstatePulse/pkg/http"
	applogger "EstatePulse/pkg/logger"
)

// App encapsulates the application lifecycle: the HTTP server plus the
// optional infrastructure clients it has to drain on shutdown.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	hub        *ws.Hub
	history    domrepo.HistoryStore
	events     domrepo.Publisher
	cache      cache.Service
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	hub *ws.Hub,
	history domrepo.HistoryStore,
	events domrepo.Publisher,
	c cache.Service,
	logger *applogger.Logger,
) *App {
	return &App{
		cfg:     cfg,
		handler: handler,
		hub:     hub,
		history: history,
		events:  events,
		cache:   c,
		logger:  logger,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("model_server", a.cfg.ModelServer.BaseURL),
		applogger.Bool("history", a.history != nil),
		applogger.Bool("events", a.events != nil),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown drains the HTTP server first, then closes everything else.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.hub != nil {
		if err := a.hub.Close(); err != nil {
			a.logger.Warn("websocket hub close error", applogger.Error(err))
		}
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("event publisher close error", applogger.Error(err))
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn("history store close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
