// Package server exposes a command catalog over HTTP: clients post a JSON
// payload for a named tool, the server decodes it into the tool's record
// type, builds the invocation, and either returns the program/argv pair or
// runs it through the configured runner.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/cmdspec/catalog"
	"github.com/danmuck/cmdspec/internal/observability"
	"github.com/danmuck/cmdspec/runner"
)

type Server struct {
	ID      string
	Addr    string
	Catalog *catalog.Registry
	Runner  runner.Runner
	Started time.Time

	router *gin.Engine
}

func New(id, addr string, corsOrigins []string, cat *catalog.Registry, run runner.Runner) *Server {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		ID:      id,
		Addr:    addr,
		Catalog: cat,
		Runner:  run,
		Started: time.Now(),
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
