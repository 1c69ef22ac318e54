// Package server exposes the dashboard over HTTP: the REST API, the
// Prometheus scrape endpoint, and the websocket replay sessions.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/backview/config"
	"github.com/rustyeddy/backview/metrics"
	"github.com/rustyeddy/backview/store"
)

// Server wires the API routes to the store and replay machinery.
type Server struct {
	cfg    *config.Config
	store  store.Store
	log    *slog.Logger
	router *gin.Engine
}

// New builds a ready-to-run server. A nil logger falls back to
// slog.Default().
func New(cfg *config.Config, st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		store:  st,
		log:    logger,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), s.requestLog(), s.cors())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.GET("/health", s.health)
		api.GET("/market/:symbol/ohlcv", s.getOHLCV)

		api.POST("/runs", s.ingestRun)
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id", s.getRun)
		api.DELETE("/runs/:id", s.deleteRun)
		api.GET("/runs/:id/frame", s.getFrame)

		api.GET("/profiles", s.listProfiles)
		api.POST("/profiles", s.createProfile)
		api.POST("/profiles/reorder", s.reorderProfiles)
		api.GET("/profiles/:id", s.getProfile)
		api.PUT("/profiles/:id", s.updateProfile)
		api.DELETE("/profiles/:id", s.deleteProfile)

		api.GET("/ws", s.handleWS)
	}
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("server listening", "addr", s.cfg.Server.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
