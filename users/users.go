package users

import (
	"time"
)

// RoleType is the privilege level resolved for an identity on each request.
// It is derived from the admin allow-list and never stored on the profile.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"   // Email is on the admin allow-list
	RoleRegular RoleType = "regular" // Any other authenticated account
)

// Profile is the account row kept by the login and renewal flows.
// The access middleware only ever reads it.
type Profile struct {
	ID               string     `json:"id"`                           // Account identifier, matches the token subject
	Email            string     `json:"email,omitempty"`              // Account email
	AccountExpiresAt *time.Time `json:"account_expires_at,omitempty"` // Membership end; nil means never activated
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`      // Written by the login flow; nil means never recorded
	LastLoginSession string     `json:"last_login_session,omitempty"` // Opaque fingerprint of the last login, audit only
}
