package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/service"
	"github.com/maxviazov/game-tracker-service/pkg/response"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/reviews")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/game/:gameId", h.listByGame)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

// wantsExpand reports whether the client asked for embedded games (?expand=game).
func wantsExpand(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(c.Query("expand")), "game")
}

func (h *ReviewHandler) list(c *gin.Context) {
	reviews, err := h.svc.ListReviews(c.Request.Context(), wantsExpand(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, reviews)
}

func (h *ReviewHandler) listByGame(c *gin.Context) {
	reviews, err := h.svc.ListReviewsByGame(c.Request.Context(), c.Param("gameId"), wantsExpand(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, reviews)
}

func (h *ReviewHandler) getByID(c *gin.Context) {
	review, err := h.svc.GetReview(c.Request.Context(), c.Param("id"), wantsExpand(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, review)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var in model.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.svc.CreateReview(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, review)
}

func (h *ReviewHandler) update(c *gin.Context) {
	var in model.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.svc.UpdateReview(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, review)
}

func (h *ReviewHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"message": "Review deleted"})
}
