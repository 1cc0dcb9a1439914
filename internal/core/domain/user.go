package domain

import "time"

// AuthProvider identifies how a user authenticates.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Preferences holds per-user display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// User represents a registered user. Once a request is authenticated the
// loaded User acts as the principal for the rest of the pipeline and is
// never mutated by it.
type User struct {
	UserID         string      `json:"userID"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   *string     `json:"-"`
	AuthProvider   string      `json:"authProvider"`
	ProviderUserID string      `json:"-"`
	Plan           Plan        `json:"plan"`
	Preferences    Preferences `json:"preferences"`
	IsActive       bool        `json:"isActive"`
	LastLoginAt    *time.Time  `json:"lastLoginAt,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
