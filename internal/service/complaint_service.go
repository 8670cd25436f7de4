package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/resolvenow/complaint-service/internal/domain"
	"github.com/resolvenow/complaint-service/internal/events"
	"github.com/resolvenow/complaint-service/internal/repository"
	apperrors "github.com/resolvenow/complaint-service/pkg/util"
)

// ComplaintService owns the complaint lifecycle: creation, status transitions,
// timestamp bookkeeping and filtered listing.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	CategoryRepo  repository.CategoryRepository
	Dispatcher    events.Dispatcher
}

// ComplaintCreateInput describes the submission payload.
type ComplaintCreateInput struct {
	CategoryID  string
	Title       string
	Description string
	Priority    domain.ComplaintPriority
}

// ComplaintListFilter describes listing predicates. Zero values mean "all";
// Owner restricts the list to a single profile's complaints.
type ComplaintListFilter struct {
	Owner    *string
	Status   *domain.ComplaintStatus
	Priority *domain.ComplaintPriority
	Text     *string
	Limit    int
	Offset   int
}

// StatusSummary holds per-status counts over a complaint list.
type StatusSummary struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a complaint on behalf of a user. The record starts in
// pending with no admin response and no resolution timestamp.
func (s *ComplaintService) Submit(ctx context.Context, userID string, input ComplaintCreateInput) (*domain.Complaint, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", map[string]any{"field": "title"})
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description required", map[string]any{"field": "description"})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.ComplaintPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(input.Priority)})
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewReferentialError("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	complaint := &domain.Complaint{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: description,
		Status:      domain.ComplaintStatusPending,
		Priority:    priority,
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{ProfileID: userID, Role: domain.RoleUser},
		Payload: events.ComplaintCreatedPayload{
			CategoryID: complaint.CategoryID,
			Priority:   complaint.Priority,
			Title:      complaint.Title,
		},
	})
	return complaint, nil
}

// UpdateStatus moves a complaint to a new status and optionally replaces the
// admin response. Only admins may call it; the role is checked here even
// though route guards enforce it as well.
//
// Any status may move to any other status. ResolvedAt is set exactly on the
// transition into resolved and is never cleared, so a complaint moved out of
// resolved keeps the timestamp of its first resolution.
func (s *ComplaintService) UpdateStatus(ctx context.Context, actor *domain.Profile, complaintID string, newStatus domain.ComplaintStatus, adminResponse *string) (*domain.Complaint, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	oldStatus := complaint.Status
	resolvedNow := newStatus == domain.ComplaintStatusResolved && oldStatus != domain.ComplaintStatusResolved
	if resolvedNow {
		now := time.Now()
		complaint.ResolvedAt = &now
	}
	if adminResponse != nil {
		complaint.AdminResponse = adminResponse
	}
	complaint.Status = newStatus

	if err := s.complaints.Update(ctx, complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{ProfileID: actor.ID, Role: actor.Role},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
			AdminResponse: adminResponse,
		},
	})
	if resolvedNow {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintResolved,
			ComplaintID: complaint.ID,
			Actor:       events.Actor{ProfileID: actor.ID, Role: actor.Role},
			Payload:     events.ComplaintResolvedPayload{ResolvedAt: *complaint.ResolvedAt},
		})
	}
	return complaint, nil
}

// List returns complaints matching all supplied predicates, newest first.
func (s *ComplaintService) List(ctx context.Context, filter ComplaintListFilter) ([]domain.Complaint, error) {
	if filter.Status != nil && !domain.ValidStatus(*filter.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(*filter.Status)})
	}
	if filter.Priority != nil && !domain.ValidPriority(*filter.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": string(*filter.Priority)})
	}

	complaints, err := s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		OwnerID:    filter.Owner,
		Status:     filter.Status,
		Priority:   filter.Priority,
		SearchTerm: filter.Text,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return complaints, nil
}

// GetForUser fetches a single complaint ensuring ownership.
func (s *ComplaintService) GetForUser(ctx context.Context, userID, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if complaint.UserID != userID {
		return nil, apperrors.NewForbidden("not the complaint owner")
	}
	return complaint, nil
}

// Summarize counts complaints per status. Pure over its input.
func Summarize(complaints []domain.Complaint) StatusSummary {
	summary := StatusSummary{Total: len(complaints)}
	for i := range complaints {
		switch complaints[i].Status {
		case domain.ComplaintStatusPending:
			summary.Pending++
		case domain.ComplaintStatusInProgress:
			summary.InProgress++
		case domain.ComplaintStatusResolved:
			summary.Resolved++
		case domain.ComplaintStatusRejected:
			summary.Rejected++
		}
	}
	return summary
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
