package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/scorectl/internal/auth"
	"github.com/danmuck/scorectl/internal/bowling"
	"github.com/danmuck/scorectl/internal/scoring"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

type scoreRequest struct {
	Rolls []any `json:"rolls" binding:"required"`
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1", auth.Middleware(s.validator))
	v1.POST("/scorecards", s.handleScoreJSON)
	v1.GET("/scorecards", s.handleScoreQuery)
}

func (s *Server) handleScoreJSON(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	s.respond(c, req.Rolls)
}

func (s *Server) handleScoreQuery(c *gin.Context) {
	raw, ok := c.GetQuery("rolls")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing rolls query parameter"})
		return
	}
	s.respond(c, bowling.SplitTokens(raw))
}

func (s *Server) respond(c *gin.Context, tokens []any) {
	res, err := s.scorer.Score(tokens)
	if err != nil {
		var rollErr *bowling.InvalidRollError
		switch {
		case errors.As(err, &rollErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"index": rollErr.Index,
				"token": rollErr.Token,
			})
		case errors.Is(err, scoring.ErrTooManyRolls):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"max_rolls": s.scorer.MaxRolls(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
