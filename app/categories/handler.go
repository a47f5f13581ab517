package categories

import (
	"net/http"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/models"
)

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type CategoryProvider interface {
	GetAllCategories() ([]models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// NewCategoryResponses maps categories to their tiles, keeping their order.
func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Color: c.Color,
		}
	}
	return response
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories()
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to fetch categories")
		api.Error(w, r, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	api.JSON(w, r, http.StatusOK, NewCategoryResponses(categories))
}
