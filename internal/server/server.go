// Package server wires the HTTP surface: routes, middleware and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"agriintel/internal/config"
	"agriintel/internal/controller"
	"agriintel/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers groups the HTTP handlers the server mounts.
type Controllers struct {
	Dashboard     *controller.DashboardController
	Notifications *controller.NotificationController
	Chat          *controller.ChatController
}

// Server owns the gin engine and its lifecycle.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
	logger *slog.Logger
}

// New builds the engine with middleware and routes mounted.
func New(cfg config.Config, ctrl Controllers, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.StructuredLoggingMiddleware(logger))

	registerRoutes(engine, ctrl)

	return &Server{cfg: cfg, engine: engine, logger: logger}
}

func registerRoutes(engine *gin.Engine, ctrl Controllers) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", middleware.MetricsHandler)

	v1 := engine.Group("/v1")
	{
		v1.GET("/dashboard", ctrl.Dashboard.GetSnapshot)
		v1.GET("/dashboard/:panel", ctrl.Dashboard.GetPanel)
		v1.POST("/farm", ctrl.Dashboard.RegisterFarm)
		v1.GET("/export/ndvi.csv", ctrl.Dashboard.ExportNDVI)
		v1.GET("/export/soil.csv", ctrl.Dashboard.ExportSoil)

		v1.GET("/notifications", ctrl.Notifications.List)
		v1.POST("/notifications/:id/read", ctrl.Notifications.MarkRead)

		v1.GET("/chat", ctrl.Chat.GetTranscript)
		v1.POST("/chat", ctrl.Chat.Submit)
	}
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down with a
// deadline so in-flight requests can finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
