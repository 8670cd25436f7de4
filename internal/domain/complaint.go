package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// ValidStatus reports whether s is one of the four persisted states.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	}
	return false
}

// ComplaintPriority enumerates urgency levels set at submission.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

// ValidPriority reports whether p is one of the three persisted priorities.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh:
		return true
	}
	return false
}

// Complaint is the aggregate for user-submitted issues.
//
// ResolvedAt is a monotonic marker: it is set the first time the complaint
// enters resolved and is never cleared afterwards, even if the status later
// moves away from resolved.
type Complaint struct {
	ID            string
	UserID        string
	CategoryID    string
	Title         string
	Description   string
	Status        ComplaintStatus
	Priority      ComplaintPriority
	AdminResponse *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ResolvedAt    *time.Time
}
