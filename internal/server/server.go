// Package server exposes the retrieval API over HTTP.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NoreeIsmael/Next-Project/internal/catalog"
	"github.com/NoreeIsmael/Next-Project/internal/engine"
	"github.com/NoreeIsmael/Next-Project/internal/hub"
	"github.com/NoreeIsmael/Next-Project/internal/metrics"
	"github.com/NoreeIsmael/Next-Project/internal/model"
)

// readFailureDetail is the only text a failed read ever sends to a client.
// Whatever actually went wrong stays in the server log.
const readFailureDetail = "An error occurred while trying to read the logs. " +
	"Please try again later. If the problem persists, contact the system administrator. " +
	"If you are the system administrator, check the logs on the server for more information."

// Server holds the Gin engine and the dependencies of the API handlers.
type Server struct {
	engine  *gin.Engine
	hub     *hub.Hub
	metrics *metrics.Collector
	root    string
	port    string
}

// New creates the API server. root is the directory holding the *.log files.
func New(root string, h *hub.Hub, m *metrics.Collector, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:  engine,
		hub:     h,
		metrics: m,
		root:    root,
		port:    port,
	}

	s.setupRoutes()
	return s
}

// requestID tags every request so a client-reported failure can be matched
// to its server log lines.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("requestID", id)
		c.Next()
	}
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/logs", s.handleReadLogs)
	api.GET("/logs/files", s.handleListFiles)
	api.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.Snapshot())
	})

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		stats := s.metrics.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  stats.Uptime,
			"queries": stats.Queries,
		})
	})

	// WebSocket live stream.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// parseQuery builds a LogQuery from the request parameters, filling service
// defaults for everything the client leaves out.
func parseQuery(c *gin.Context) (model.LogQuery, error) {
	q := model.DefaultQuery(c.Query("logName"))

	if raw := c.Query("amount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("amount %q is not an integer", raw)
		}
		q.Amount = n
	}
	if raw := c.Query("severity"); raw != "" {
		sev, err := model.ParseSeverity(raw)
		if err != nil {
			return q, err
		}
		q.Severity = sev
	}
	if raw := c.Query("order"); raw != "" {
		switch model.Order(raw) {
		case model.OrderAsc, model.OrderDesc:
			q.Order = model.Order(raw)
		default:
			return q, fmt.Errorf("invalid order %q", raw)
		}
	}

	return q, q.Validate()
}

func (s *Server) handleReadLogs(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	entries, err := engine.Read(s.root, q)
	s.metrics.RecordQuery(entries, err)

	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Log file not found"})
	case err != nil:
		log.Printf("server: request %s: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": readFailureDetail})
	default:
		c.JSON(http.StatusOK, entries)
	}
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := catalog.List(s.root)
	if err != nil {
		log.Printf("server: request %s: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": readFailureDetail})
		return
	}
	c.JSON(http.StatusOK, model.LogFiles{LogFiles: files})
}

// Handler exposes the router, mainly so the serve command can wrap it in an
// http.Server with graceful shutdown.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
