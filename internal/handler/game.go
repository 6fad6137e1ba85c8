package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/service"
	"github.com/maxviazov/game-tracker-service/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

func (h *GameHandler) list(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, games)
}

func (h *GameHandler) create(c *gin.Context) {
	var in model.GameInput
	if !bindJSON(c, &in) {
		return
	}
	game, err := h.svc.CreateGame(c.Request.Context(), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, game)
}

func (h *GameHandler) getByID(c *gin.Context) {
	game, err := h.svc.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) update(c *gin.Context) {
	var in model.GameInput
	if !bindJSON(c, &in) {
		return
	}
	game, err := h.svc.UpdateGame(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) delete(c *gin.Context) {
	res, err := h.svc.DeleteGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

// bindJSON decodes the request body and reports malformed payloads
// through the same field-error envelope as domain validation.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.WriteError(c, service.NewInvalidInputError(service.FieldError{
			Field:   "body",
			Message: "must be a valid JSON object",
		}))
		return false
	}
	return true
}
