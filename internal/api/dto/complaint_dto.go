package dto

import (
	"time"

	"github.com/resolvenow/complaint-service/internal/domain"
)

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	CategoryID  string                   `json:"category_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Priority    domain.ComplaintPriority `json:"priority"`
}

// UpdateComplaintStatusRequest payload. AdminResponse, when present, replaces
// the stored response.
type UpdateComplaintStatusRequest struct {
	Status        domain.ComplaintStatus `json:"status"`
	AdminResponse *string                `json:"admin_response,omitempty"`
}

// ComplaintResponse is the full complaint representation.
type ComplaintResponse struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"user_id"`
	CategoryID    string                   `json:"category_id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Status        domain.ComplaintStatus   `json:"status"`
	Priority      domain.ComplaintPriority `json:"priority"`
	AdminResponse *string                  `json:"admin_response"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	ResolvedAt    *time.Time               `json:"resolved_at"`
}

// FromComplaint maps a domain complaint to its response form.
func FromComplaint(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            complaint.ID,
		UserID:        complaint.UserID,
		CategoryID:    complaint.CategoryID,
		Title:         complaint.Title,
		Description:   complaint.Description,
		Status:        complaint.Status,
		Priority:      complaint.Priority,
		AdminResponse: complaint.AdminResponse,
		CreatedAt:     complaint.CreatedAt,
		UpdatedAt:     complaint.UpdatedAt,
		ResolvedAt:    complaint.ResolvedAt,
	}
}

// FromComplaints maps a complaint list preserving order.
func FromComplaints(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, FromComplaint(&complaints[i]))
	}
	return items
}
