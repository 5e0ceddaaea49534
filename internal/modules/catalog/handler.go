package catalog

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
	}
}

// ListCategories
//
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Category
// @Failure 500 {object} map[string]string
// @Router /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateCategory
//
// @Summary Create category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Issues(c, http.StatusBadRequest, validator.FromBindError(err))
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.Issues(c, http.StatusBadRequest, issues)
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryExists):
			response.Error(c, http.StatusConflict, "Category already exists")
		case errors.Is(err, repository.ErrInvalidCategory):
			response.Error(c, http.StatusBadRequest, "Category name is required")
		default:
			response.Internal(c, http.StatusInternalServerError, "Failed to create category", err)
		}
		return
	}
	c.JSON(http.StatusCreated, category)
}
