package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/cmdspec/internal/observability"
)

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"service": s.ID,
			"version": "0.0.1",
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Started).String(),
			"service": s.ID,
			"version": "0.0.1",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/tools", func(c *gin.Context) {
		entries := s.Catalog.All()
		tools := make([]gin.H, 0, len(entries))
		for _, name := range s.Catalog.Names() {
			e := entries[name]
			tools = append(tools, gin.H{
				"name":        e.Name,
				"description": e.Description,
			})
		}
		c.JSON(http.StatusOK, gin.H{"tools": tools})
	})

	s.router.POST("/tools/:tool/build", func(c *gin.Context) {
		name := c.Param("tool")
		program, args, ok := s.buildTool(c, name)
		if !ok {
			return
		}
		observability.RecordToolBuild(s.ID, name)
		c.JSON(http.StatusOK, gin.H{
			"program": program,
			"args":    args,
		})
	})

	s.router.POST("/tools/:tool/run", func(c *gin.Context) {
		name := c.Param("tool")
		program, args, ok := s.buildTool(c, name)
		if !ok {
			return
		}
		observability.RecordToolBuild(s.ID, name)

		start := time.Now()
		res, err := s.Runner.Run(program, args...)
		observability.RecordToolRun(s.ID, name, res.ExitCode, time.Since(start))

		if err != nil && res.ExitCode == 0 {
			// Spawn failure rather than a process outcome.
			log.Error().Err(err).Str("tool", name).Str("program", program).Msg("spawn failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"program":   program,
			"args":      args,
			"exit_code": res.ExitCode,
			"stdout":    string(res.Stdout),
			"stderr":    string(res.Stderr),
		})
	})
}

// buildTool decodes the request payload into a fresh instance of the named
// tool and builds its invocation. It writes the error response itself when
// the lookup or decode fails.
func (s *Server) buildTool(c *gin.Context, name string) (string, []string, bool) {
	entry, ok := s.Catalog.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + name})
		return "", nil, false
	}

	inst := entry.New()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(inst); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return "", nil, false
		}
	}

	program, args := entry.Spec.Build(inst)
	return program, args, true
}
