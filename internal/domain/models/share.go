package models

import (
	"time"
)

// AccessLevel is the permission granted by a share.
type AccessLevel string

const (
	AccessView AccessLevel = "view"
	AccessEdit AccessLevel = "edit"
)

// Valid reports whether the access level is a known value.
func (a AccessLevel) Valid() bool {
	return a == AccessView || a == AccessEdit
}

// ShareGrant links a file to a recipient. A nil SharedWith means a public
// link; a nil ExpiresAt means the grant never expires.
type ShareGrant struct {
	ID          string      `json:"id" db:"id"`
	FileID      string      `json:"file_id" db:"file_id"`
	SharedBy    string      `json:"shared_by" db:"shared_by"`
	SharedWith  *string     `json:"shared_with" db:"shared_with"`
	AccessLevel AccessLevel `json:"access_level" db:"access_level"`
	ExpiresAt   *time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// Expired reports whether the grant has passed its expiry at the given time.
func (g *ShareGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}
