// Package server hosts the catalog HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/catalog-sync/internal/core/errors"
	"github.com/gin-gonic/gin"
)

const (
	healthTimeout   = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// HealthChecker reports whether the catalog store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server owns the gin engine; feature packages register their routes on
// Engine before Run.
type Server struct {
	Engine *gin.Engine
	Addr   string
	store  HealthChecker
}

func New(addr string, store HealthChecker, mode string) *Server {
	if mode == gin.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	s := &Server{Engine: r, Addr: addr, store: store}
	r.GET("/health", s.handleHealth)
	return s
}

type healthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, httperr.OK(healthStatus{Status: "healthy", Storage: "none"}))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.Error("[Server] Catalog store unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, httperr.Fail(httperr.HttpStorageError, "Catalog store unreachable", err.Error()))
		return
	}

	c.JSON(http.StatusOK, httperr.OK(healthStatus{Status: "healthy", Storage: "connected"}))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", "address", s.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("[Server] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
