package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/game-tracker-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, gameSvc service.GameService, reviewSvc service.ReviewService, statsSvc service.StatsService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIPrefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewGameHandler(gameSvc).Register(api)
		NewReviewHandler(reviewSvc).Register(api)
		NewStatsHandler(statsSvc).Register(api)
	}
}
