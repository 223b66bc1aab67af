package service

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/reversi/stats"
)

const RequestIDHeader = "X-Request-Id"

// StandingsSource is anything that can report per-player results, such as
// an autoplay results store.
type StandingsSource interface {
	Standings(ctx context.Context) (map[string]*stats.WinRate, error)
}

type Standing struct {
	Player     string  `json:"player"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Draws      int     `json:"draws"`
	WinPct     float64 `json:"win_pct"`
	MeanSpread float64 `json:"mean_spread"`
}

// Server exposes the service over HTTP.
type Server struct {
	router    *gin.Engine
	svc       *Service
	standings StandingsSource
}

// NewServer builds the HTTP routes. standings may be nil, in which case
// /api/standings answers 404.
func NewServer(svc *Service, standings StandingsSource) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())
	s := &Server{router: router, svc: svc, standings: standings}

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.POST("/api/move", s.handleMove)
	router.GET("/api/standings", s.handleStandings)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("rid", id)
		c.Header(RequestIDHeader, id)
		c.Next()
		log.Debug().Str("rid", id).Str("path", c.FullPath()).Int("status", c.Writer.Status()).
			Msg("http-request")
	}
}

func (s *Server) handleMove(c *gin.Context) {
	req := MoveRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := s.svc.Handle(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrBadRequest) {
			status = http.StatusBadRequest
		}
		log.Err(err).Str("rid", c.GetString("rid")).Msg("move-request-failed")
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStandings(c *gin.Context) {
	if s.standings == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no results store configured"})
		return
	}
	m, err := s.standings.Standings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	names := lo.Keys(m)
	slices.Sort(names)
	c.JSON(http.StatusOK, lo.Map(names, func(name string, _ int) Standing {
		w := m[name]
		return Standing{
			Player:     name,
			Games:      w.Games(),
			Wins:       w.Wins,
			Losses:     w.Losses,
			Draws:      w.Draws,
			WinPct:     w.Pct(),
			MeanSpread: w.Spread().Mean(),
		}
	}))
}
