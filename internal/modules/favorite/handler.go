package favorite

import (
	"net/http"
	"strings"

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
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", h.Add)
		favorites.POST("/toggle", h.Toggle)
		favorites.DELETE("/:tipId", h.Remove)
	}
}

// List returns favorites in the order they were added.
//
// @Summary List favorites
// @Tags Favorite
// @Produce json
// @Param tipIds query string false "Comma-separated tip ids to filter by"
// @Success 200 {array} domain.Favorite
// @Failure 500 {object} map[string]string
// @Router /favorites [get]
func (h *Handler) List(c *gin.Context) {
	var tipIDs []string
	if raw, ok := c.GetQueryArray("tipIds"); ok {
		// Present but empty filters to nothing.
		tipIDs = append([]string{}, parseIDs(raw)...)
	}

	list, err := h.service.List(c.Request.Context(), tipIDs)
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to fetch favorites", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Add
//
// @Summary Add favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body AddFavoriteRequest true "Tip to favorite"
// @Success 201 {object} domain.Favorite
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /favorites [post]
func (h *Handler) Add(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	fav, err := h.service.Add(c.Request.Context(), req.TipID)
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// Remove answers 204 whether or not a favorite existed.
//
// @Summary Remove favorite
// @Tags Favorite
// @Param tipId path string true "Tip ID"
// @Success 204
// @Failure 500 {object} map[string]string
// @Router /favorites/{tipId} [delete]
func (h *Handler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("tipId")); err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to remove favorite", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle flips the favorite state of a tip in one step.
//
// @Summary Toggle favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body AddFavoriteRequest true "Tip to toggle"
// @Success 201 {object} ToggleResponse "Added"
// @Success 200 {object} ToggleResponse "Removed"
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /favorites/toggle [post]
func (h *Handler) Toggle(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	res, err := h.service.Toggle(c.Request.Context(), req.TipID)
	if err != nil {
		response.Internal(c, http.StatusInternalServerError, "Failed to toggle favorite", err)
		return
	}

	status := http.StatusOK
	if res.Action == ActionAdded {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

func bindRequest(c *gin.Context) (AddFavoriteRequest, bool) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Issues(c, http.StatusBadRequest, validator.FromBindError(err))
		return req, false
	}
	if issues := validator.Validate(req); issues != nil {
		response.Issues(c, http.StatusBadRequest, issues)
		return req, false
	}
	return req, true
}

// parseIDs accepts both ?tipIds=a,b and repeated ?tipIds=a&tipIds=b.
func parseIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
