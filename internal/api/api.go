// Package api exposes the dashboard data over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"SoundTreasury/internal/export"
	"SoundTreasury/internal/orchestrator"
	"SoundTreasury/internal/sector"
)

// DataProvider is the slice of the orchestrator the handlers need.
type DataProvider interface {
	GetModelSeries(ctx context.Context, force bool) *orchestrator.ModelResult
	GetSectorSeries(ctx context.Context, key string, force bool) (*orchestrator.SectorResult, error)
	Baseline() *orchestrator.ModelResult
}

// Server hosts the JSON API for the dashboard frontend.
type Server struct {
	provider   DataProvider
	address    string
	log        *logrus.Entry
	httpServer *http.Server
}

// NewServer builds the API server on the given listen address.
func NewServer(provider DataProvider, address string) *Server {
	return &Server{
		provider: provider,
		address:  address,
		log:      logrus.WithField("component", "api"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/model", s.handleModel)
	router.GET("/api/model/baseline", s.handleBaseline)
	router.GET("/api/model/export.csv", s.handleExport)
	router.GET("/api/sectors", s.handleSectorList)
	router.GET("/api/sector/:key", s.handleSector)

	return router
}

func (s *Server) handleModel(c *gin.Context) {
	res := s.provider.GetModelSeries(c.Request.Context(), forced(c))
	c.JSON(http.StatusOK, res)
}

// handleBaseline serves the instant pre-fetch series for the first paint.
func (s *Server) handleBaseline(c *gin.Context) {
	c.JSON(http.StatusOK, s.provider.Baseline())
}

func (s *Server) handleExport(c *gin.Context) {
	res := s.provider.GetModelSeries(c.Request.Context(), false)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="fair_value_series.csv"`)
	if err := export.WriteCSV(c.Writer, res.Data); err != nil {
		s.log.Errorf("csv export: %v", err)
	}
}

func (s *Server) handleSectorList(c *gin.Context) {
	keys := sector.Keys()
	payload := make([]gin.H, 0, len(keys))
	for _, key := range keys {
		sec, _ := sector.ByKey(key)
		payload = append(payload, gin.H{"key": sec.Key, "label": sec.Label})
	}
	c.JSON(http.StatusOK, gin.H{"sectors": payload})
}

func (s *Server) handleSector(c *gin.Context) {
	key := c.Param("key")
	res, err := s.provider.GetSectorSeries(c.Request.Context(), key, forced(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sector: " + key})
		return
	}
	c.JSON(http.StatusOK, res)
}

func forced(c *gin.Context) bool {
	v := c.Query("refresh")
	return v == "1" || v == "true"
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.address)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
