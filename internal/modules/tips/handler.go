package tips

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/pkg/response"
	"productivity/internal/pkg/validator"
	"productivity/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tip routes. Static segments win over :id.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tips := rg.Group("/tips")
	{
		tips.GET("", h.List)
		tips.POST("", h.Create)
		tips.GET("/random", h.Random)
		tips.GET("/search", h.Search)
		tips.GET("/category/:category", h.ListByCategory)
		tips.GET("/:id", h.Get)
	}
}

// List returns all tips, newest first.
//
// @Summary List tips
// @Tags Tips
// @Produce json
// @Success 200 {array} domain.Tip
// @Failure 500 {object} map[string]string
// @Router /tips [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch tips", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListByCategory
//
// @Summary List tips of one category
// @Tags Tips
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {array} domain.Tip
// @Failure 500 {object} map[string]string
// @Router /tips/category/{category} [get]
func (h *Handler) ListByCategory(c *gin.Context) {
	list, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch tips by category", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Search matches q against tip text and category, case-insensitively.
//
// @Summary Search tips
// @Tags Tips
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} domain.Tip
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tips/search [get]
func (h *Handler) Search(c *gin.Context) {
	values := c.QueryArray("q")
	if len(values) != 1 {
		response.Error(c, http.StatusBadRequest, "Search query is required")
		return
	}

	list, err := h.service.Search(c.Request.Context(), values[0])
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			response.Error(c, http.StatusBadRequest, "Search query is required")
			return
		}
		response.Internal(c, http.StatusInternalServerError, "Failed to search tips", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a tip and counts the view.
//
// @Summary Get tip
// @Tags Tips
// @Produce json
// @Param id path string true "Tip ID"
// @Success 200 {object} domain.Tip
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tips/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	tip, err := h.service.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTipNotFound) {
			response.Error(c, http.StatusNotFound, "Tip not found")
			return
		}
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch tip", err)
		return
	}
	c.JSON(http.StatusOK, tip)
}

// Create
//
// @Summary Create tip
// @Tags Tips
// @Accept json
// @Produce json
// @Param request body CreateTipRequest true "Tip"
// @Success 201 {object} domain.Tip
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /tips [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Issues(c, http.StatusBadRequest, validator.FromBindError(err))
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Issues(c, http.StatusBadRequest, issues)
		return
	}

	tip, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to create tip", err)
		return
	}
	c.JSON(http.StatusCreated, tip)
}

// Random picks a tip at random and counts the view.
//
// @Summary Random tip
// @Tags Tips
// @Produce json
// @Success 200 {object} domain.Tip
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /tips/random [get]
func (h *Handler) Random(c *gin.Context) {
	tip, err := h.service.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoTips) {
			response.Error(c, http.StatusNotFound, "No tips available")
			return
		}
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch random tip", err)
		return
	}
	c.JSON(http.StatusOK, tip)
}
