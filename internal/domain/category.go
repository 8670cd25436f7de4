package domain

import "time"

// Category classifies complaints. Icon is a symbolic key resolved by clients;
// ResolveIcon maps unknown keys to a safe default.
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultCategoryIcon is used whenever a category carries an unknown icon key.
const DefaultCategoryIcon = "message-square"

var knownIcons = map[string]struct{}{
	"message-square": {},
	"wrench":         {},
	"truck":          {},
	"credit-card":    {},
	"shield":         {},
	"package":        {},
	"users":          {},
	"zap":            {},
}

// ResolveIcon returns the icon key if it is recognized, otherwise the default.
func ResolveIcon(key string) string {
	if _, ok := knownIcons[key]; ok {
		return key
	}
	return DefaultCategoryIcon
}
