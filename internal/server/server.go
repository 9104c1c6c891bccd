// Package server exposes the screening pipelines as a JSON API for
// the record-keeping front end. The contract toward that layer is
// "always exactly one structured result, never an unhandled failure".
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/pipeline"
)

// maxImageBytes bounds uploaded image size
const maxImageBytes = 10 << 20 // 10 MiB

// Server wires the pipelines into an HTTP router
type Server struct {
	pipeline *pipeline.Pipeline
	router   *gin.Engine
	addr     string
	logger   *slog.Logger
}

// New creates the API server
func New(cfg model.ServerConfig, p *pipeline.Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		pipeline: p,
		router:   router,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		logger:   logger,
	}

	router.Use(s.requestLogger())
	router.GET("/healthz", s.health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/check/profile-image", s.checkProfileImage)
		v1.POST("/check/food-image", s.checkFoodImage)
		v1.POST("/check/drug", s.checkDrug)
	}

	return s
}

// Run blocks serving HTTP until the listener fails
func (s *Server) Run() error {
	s.logger.Info("API server listening", "addr", s.addr)
	return s.router.Run(s.addr)
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger tags every request with an id and logs its outcome
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Info("request",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// health reports liveness plus verdict-provider reachability. The
// server stays "ok" with the provider down: requests degrade to
// UNKNOWN verdicts rather than failing.
func (s *Server) health(c *gin.Context) {
	llm := "down"
	if s.pipeline.VerdictAvailable(c.Request.Context()) {
		llm = "up"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "llm": llm})
}
