// Package server exposes the analyzer over HTTP. It is a pure
// consumer of the root bigo package: it compiles and analyzes per
// request, optionally asks the LLM for a second opinion in parallel,
// and serializes the combined result.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kolkov/bigo/internal/cache"
	"github.com/kolkov/bigo/internal/config"
	"github.com/kolkov/bigo/internal/llm"
)

// Server wires the HTTP surface to the analysis pipeline.
type Server struct {
	cfg   config.Config
	llm   llm.Client   // nil when LLM validation is disabled
	store *cache.Store // nil when caching is disabled
	log   *slog.Logger
}

// New builds a Server. Both the LLM client and the cache store are
// optional.
func New(cfg config.Config, llmClient llm.Client, store *cache.Store) *Server {
	return &Server{
		cfg:   cfg,
		llm:   llmClient,
		store: store,
		log:   slog.With("component", "server"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
	}
	return router
}

// Run serves until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
