package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/resolvenow/complaint-service/internal/api/dto"
	"github.com/resolvenow/complaint-service/internal/auth"
	"github.com/resolvenow/complaint-service/internal/service"
	apperrors "github.com/resolvenow/complaint-service/pkg/util"
)

// AdminHandler manages administrator endpoints.
type AdminHandler struct {
	complaints *service.ComplaintService
	categories *service.CategoryService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaintService *service.ComplaintService, categoryService *service.CategoryService) *AdminHandler {
	return &AdminHandler{complaints: complaintService, categories: categoryService}
}

// ListComplaints GET /admin/complaints. Unscoped unless owner is supplied.
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	filter := parseComplaintQuery(c)
	if owner := c.Query("owner"); owner != "" {
		filter.Owner = &owner
	}
	complaints, err := h.complaints.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaints(complaints)})
}

// Summary GET /admin/complaints/summary.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	complaints, err := h.complaints.List(c.UserContext(), service.ComplaintListFilter{})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": service.Summarize(complaints)})
}

// UpdateStatus PATCH /admin/complaints/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", map[string]any{"field": "status"})
	}

	complaint, err := h.complaints.UpdateStatus(c.UserContext(), principal.Profile, c.Params("id"), req.Status, req.AdminResponse)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromComplaint(complaint)})
}

// CreateCategory POST /admin/categories.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category, err := h.categories.Create(c.UserContext(), principal.Profile, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromCategory(category)})
}

// UpdateCategory PUT /admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	category, err := h.categories.Update(c.UserContext(), principal.Profile, c.Params("id"), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromCategory(category)})
}
