package models

import "time"

// RecentAccount is a remembered login identity for fast re-entry.
// Only the email is kept; passwords are never stored.
type RecentAccount struct {
	Email      string    `json:"email"`
	LastUsedAt time.Time `json:"lastUsedAt"`
}
