package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/maxviazov/game-tracker-service/internal/service"
	"github.com/maxviazov/game-tracker-service/pkg/response"
)

const serviceTimeout = 5 * time.Second

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	r.GET("/stats", h.summary)
}

// summary handles requests for the collection statistics.
func (h *StatsHandler) summary(c *gin.Context) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	sum, err := h.svc.Summary(ctx)

	logger := log.With().
		Str("path", c.Request.URL.Path).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("failed to compute statistics")
		response.WriteError(c, err)
		return
	}

	logger.Info().
		Int("status", http.StatusOK).
		Int("total_games", sum.TotalGames).
		Int("total_reviews", sum.TotalReviews).
		Msg("statistics computed")
	response.WriteData(c, http.StatusOK, sum)
}
