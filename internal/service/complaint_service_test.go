package service_test

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resolvenow/complaint-service/internal/domain"
	"github.com/resolvenow/complaint-service/internal/events"
	"github.com/resolvenow/complaint-service/internal/repository"
	"github.com/resolvenow/complaint-service/internal/service"
	apperrors "github.com/resolvenow/complaint-service/pkg/util"
)

type fakeComplaintRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Complaint
	nextID      int
	createCalls int
	failWrites  bool
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{byID: map[string]*domain.Complaint{}}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failWrites {
		return assert.AnError
	}
	r.nextID++
	complaint.ID = "c-" + strconv.Itoa(r.nextID)
	now := time.Now()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	stored := *complaint
	r.byID[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return assert.AnError
	}
	if _, ok := r.byID[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	complaint.UpdatedAt = time.Now()
	stored := *complaint
	r.byID[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeComplaintRepo) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, stored := range r.byID {
		if filter.OwnerID != nil && stored.UserID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && stored.Priority != *filter.Priority {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			title := strings.ToLower(stored.Title)
			description := strings.ToLower(stored.Description)
			if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
				continue
			}
		}
		result = append(result, *stored)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// seed inserts a complaint directly, bypassing lifecycle rules.
func (r *fakeComplaintRepo) seed(complaint domain.Complaint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := complaint
	r.byID[complaint.ID] = &stored
}

type fakeCategoryRepo struct {
	byID map[string]domain.Category
}

func newFakeCategoryRepo(ids ...string) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{byID: map[string]domain.Category{}}
	for _, id := range ids {
		repo.byID[id] = domain.Category{ID: id, Name: "Cat " + id, Icon: "message-square"}
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = "cat-" + category.Name
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.byID[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.byID[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	result := make([]domain.Category, 0, len(r.byID))
	for _, category := range r.byID {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

type spyDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *spyDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *spyDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *spyDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]events.EventType, 0, len(d.events))
	for _, event := range d.events {
		types = append(types, event.Type)
	}
	return types
}

func newService(complaints *fakeComplaintRepo, categories *fakeCategoryRepo, dispatcher events.Dispatcher) *service.ComplaintService {
	return service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaints,
		CategoryRepo:  categories,
		Dispatcher:    dispatcher,
	})
}

func adminProfile() *domain.Profile {
	return &domain.Profile{ID: "admin-1", Role: domain.RoleAdmin}
}

func userProfile() *domain.Profile {
	return &domain.Profile{ID: "user-1", Role: domain.RoleUser}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.ComplaintStatus) *domain.ComplaintStatus { return &s }

func TestSubmitCreatesPendingComplaint(t *testing.T) {
	complaints := newFakeComplaintRepo()
	dispatcher := &spyDispatcher{}
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), dispatcher)

	complaint, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "cat-1",
		Title:       "  Refund request ",
		Description: " Charged twice for the same order ",
		Priority:    domain.ComplaintPriorityHigh,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, complaint.ID)
	assert.Equal(t, "Refund request", complaint.Title)
	assert.Equal(t, "Charged twice for the same order", complaint.Description)
	assert.Equal(t, domain.ComplaintStatusPending, complaint.Status)
	assert.Nil(t, complaint.AdminResponse)
	assert.Nil(t, complaint.ResolvedAt)
	assert.True(t, complaint.CreatedAt.Equal(complaint.UpdatedAt))

	assert.Equal(t, []events.EventType{events.EventComplaintCreated}, dispatcher.types())
}

func TestSubmitDefaultsPriorityToMedium(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo("cat-1"), nil)

	complaint, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "cat-1",
		Title:       "Slow delivery",
		Description: "Order took three weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintPriorityMedium, complaint.Priority)
}

func TestSubmitRejectsBlankTitleWithoutWriting(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)

	_, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "cat-1",
		Title:       "   ",
		Description: "Something broke",
	})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	assert.Zero(t, complaints.createCalls)
}

func TestSubmitRejectsUnknownPriority(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo("cat-1"), nil)

	_, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "cat-1",
		Title:       "Broken item",
		Description: "Arrived shattered",
		Priority:    "urgent",
	})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestSubmitRejectsDanglingCategory(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo(), nil)

	_, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "missing",
		Title:       "Broken item",
		Description: "Arrived shattered",
	})
	assert.Equal(t, "REFERENCE_NOT_FOUND", domainCode(t, err))
}

func TestSubmitSurfacesStoreFailure(t *testing.T) {
	complaints := newFakeComplaintRepo()
	complaints.failWrites = true
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)

	_, err := svc.Submit(context.Background(), "user-1", service.ComplaintCreateInput{
		CategoryID:  "cat-1",
		Title:       "Broken item",
		Description: "Arrived shattered",
	})
	assert.Equal(t, "STORE_UNAVAILABLE", domainCode(t, err))
}

func TestUpdateStatusSetsResolvedAtOnFirstResolutionOnly(t *testing.T) {
	complaints := newFakeComplaintRepo()
	dispatcher := &spyDispatcher{}
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), dispatcher)
	complaints.seed(domain.Complaint{
		ID: "c-1", UserID: "user-1", CategoryID: "cat-1",
		Title: "Broken item", Description: "Arrived shattered",
		Status: domain.ComplaintStatusPending, Priority: domain.ComplaintPriorityLow,
		CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour),
	})

	resolved, err := svc.UpdateStatus(context.Background(), adminProfile(), "c-1", domain.ComplaintStatusResolved, strPtr("replaced the item"))
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolution := *resolved.ResolvedAt
	require.NotNil(t, resolved.AdminResponse)
	assert.Equal(t, "replaced the item", *resolved.AdminResponse)

	// Setting resolved again must not move the marker.
	again, err := svc.UpdateStatus(context.Background(), adminProfile(), "c-1", domain.ComplaintStatusResolved, nil)
	require.NoError(t, err)
	require.NotNil(t, again.ResolvedAt)
	assert.True(t, firstResolution.Equal(*again.ResolvedAt))
	require.NotNil(t, again.AdminResponse)
	assert.Equal(t, "replaced the item", *again.AdminResponse)

	assert.Equal(t, []events.EventType{
		events.EventComplaintStatusChanged,
		events.EventComplaintResolved,
		events.EventComplaintStatusChanged,
	}, dispatcher.types())
}

func TestUpdateStatusKeepsResolvedAtWhenLeavingResolved(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)
	resolvedAt := time.Now().Add(-time.Hour)
	complaints.seed(domain.Complaint{
		ID: "c-1", UserID: "user-1", CategoryID: "cat-1",
		Title: "Broken item", Description: "Arrived shattered",
		Status: domain.ComplaintStatusResolved, Priority: domain.ComplaintPriorityLow,
		CreatedAt: time.Now().Add(-2 * time.Hour), UpdatedAt: resolvedAt, ResolvedAt: &resolvedAt,
	})

	reopened, err := svc.UpdateStatus(context.Background(), adminProfile(), "c-1", domain.ComplaintStatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusInProgress, reopened.Status)
	require.NotNil(t, reopened.ResolvedAt)
	assert.True(t, resolvedAt.Equal(*reopened.ResolvedAt))
}

func TestUpdateStatusRejectsNonAdmin(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)
	complaints.seed(domain.Complaint{
		ID: "c-1", UserID: "user-1", CategoryID: "cat-1",
		Title: "Broken item", Description: "Arrived shattered",
		Status: domain.ComplaintStatusPending, Priority: domain.ComplaintPriorityLow,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})

	_, err := svc.UpdateStatus(context.Background(), userProfile(), "c-1", domain.ComplaintStatusResolved, nil)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	unchanged, getErr := complaints.GetByID(context.Background(), "c-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.ComplaintStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.ResolvedAt)
}

func TestUpdateStatusUnknownComplaint(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo("cat-1"), nil)

	_, err := svc.UpdateStatus(context.Background(), adminProfile(), "ghost", domain.ComplaintStatusResolved, nil)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo("cat-1"), nil)

	_, err := svc.UpdateStatus(context.Background(), adminProfile(), "c-1", "closed", nil)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestListFiltersByStatusNewestFirst(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)
	base := time.Now().Add(-time.Hour)
	statuses := []domain.ComplaintStatus{
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusPending,
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusRejected,
	}
	for i, status := range statuses {
		complaints.seed(domain.Complaint{
			ID: "c-" + strconv.Itoa(i), UserID: "user-1", CategoryID: "cat-1",
			Title: "Complaint " + strconv.Itoa(i), Description: "details",
			Status: status, Priority: domain.ComplaintPriorityMedium,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	result, err := svc.List(context.Background(), service.ComplaintListFilter{
		Status: statusPtr(domain.ComplaintStatusResolved),
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "c-2", result[0].ID)
	assert.Equal(t, "c-0", result[1].ID)
}

func TestListMatchesTextCaseInsensitively(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)
	now := time.Now()
	complaints.seed(domain.Complaint{
		ID: "c-1", UserID: "user-1", CategoryID: "cat-1",
		Title: "Refund request", Description: "Charged twice",
		Status: domain.ComplaintStatusPending, Priority: domain.ComplaintPriorityMedium,
		CreatedAt: now, UpdatedAt: now,
	})
	complaints.seed(domain.Complaint{
		ID: "c-2", UserID: "user-1", CategoryID: "cat-1",
		Title: "Late delivery", Description: "Courier never arrived",
		Status: domain.ComplaintStatusPending, Priority: domain.ComplaintPriorityMedium,
		CreatedAt: now, UpdatedAt: now,
	})

	result, err := svc.List(context.Background(), service.ComplaintListFilter{Text: strPtr("refund")})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "c-1", result[0].ID)
}

func TestListRejectsUnknownFilterValues(t *testing.T) {
	svc := newService(newFakeComplaintRepo(), newFakeCategoryRepo(), nil)

	_, err := svc.List(context.Background(), service.ComplaintListFilter{Status: statusPtr("archived")})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestGetForUserEnforcesOwnership(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newService(complaints, newFakeCategoryRepo("cat-1"), nil)
	now := time.Now()
	complaints.seed(domain.Complaint{
		ID: "c-1", UserID: "user-1", CategoryID: "cat-1",
		Title: "Broken item", Description: "Arrived shattered",
		Status: domain.ComplaintStatusPending, Priority: domain.ComplaintPriorityLow,
		CreatedAt: now, UpdatedAt: now,
	})

	complaint, err := svc.GetForUser(context.Background(), "user-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", complaint.ID)

	_, err = svc.GetForUser(context.Background(), "user-2", "c-1")
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestSummarizeCountsPerStatus(t *testing.T) {
	var complaints []domain.Complaint
	add := func(status domain.ComplaintStatus, n int) {
		for i := 0; i < n; i++ {
			complaints = append(complaints, domain.Complaint{Status: status})
		}
	}
	add(domain.ComplaintStatusPending, 3)
	add(domain.ComplaintStatusInProgress, 2)
	add(domain.ComplaintStatusResolved, 4)
	add(domain.ComplaintStatusRejected, 1)

	summary := service.Summarize(complaints)
	assert.Equal(t, service.StatusSummary{
		Total:      10,
		Pending:    3,
		InProgress: 2,
		Resolved:   4,
		Rejected:   1,
	}, summary)
}

func TestSummarizeEmptyList(t *testing.T) {
	assert.Equal(t, service.StatusSummary{}, service.Summarize(nil))
}
