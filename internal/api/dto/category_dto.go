package dto

import (
	"time"

	"github.com/resolvenow/complaint-service/internal/domain"
)

// CategoryRequest payload for create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CategoryResponse representation. Icon is always a recognized key.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromCategory maps a domain category, resolving unknown icons to the default.
func FromCategory(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Icon:        domain.ResolveIcon(category.Icon),
		CreatedAt:   category.CreatedAt,
	}
}

// FromCategories maps a category list preserving order.
func FromCategories(categories []domain.Category) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, FromCategory(&categories[i]))
	}
	return items
}
