package domain

import "time"

// ProfileRole gates which operations a caller may invoke.
type ProfileRole string

const (
	RoleUser  ProfileRole = "user"
	RoleAdmin ProfileRole = "admin"
)

// Profile is the account record for anyone interacting with the service.
type Profile struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         ProfileRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the profile may invoke admin-only operations.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
