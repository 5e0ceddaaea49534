package stats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/pkg/response"
	"productivity/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Get)
	rg.PATCH("/stats", h.Update)
}

// Get
//
// @Summary Activity stats
// @Tags Stats
// @Produce json
// @Success 200 {object} domain.UserStats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *Handler) Get(c *gin.Context) {
	st, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch stats", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Update merges the given counters and refreshes lastActive.
//
// @Summary Adjust stats
// @Tags Stats
// @Accept json
// @Produce json
// @Param request body UpdateStatsRequest true "Counters to set"
// @Success 200 {object} domain.UserStats
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /stats [patch]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Issues(c, http.StatusBadRequest, validator.FromBindError(err))
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Issues(c, http.StatusBadRequest, issues)
		return
	}

	st, err := h.service.Update(c.Request.Context(), req.Patch())
	if err != nil {
		if errors.Is(err, ErrEmptyPatch) {
			response.Issues(c, http.StatusBadRequest, []validator.Issue{{
				Code:    "custom",
				Path:    []string{},
				Message: "At least one field is required",
			}})
			return
		}
		response.Internal(c, http.StatusInternalServerError, "Failed to update stats", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
