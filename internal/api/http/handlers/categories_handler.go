package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolvenow/complaint-service/internal/api/dto"
	"github.com/resolvenow/complaint-service/internal/service"
)

// CategoriesHandler serves the predefined category list.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategories(categories)})
}
