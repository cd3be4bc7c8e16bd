package auth

import (
	"time"

	"github.com/woniu9524/love-ludo-sub000/sessions"
	"github.com/woniu9524/love-ludo-sub000/token/jwt"
	"github.com/woniu9524/love-ludo-sub000/users"
)

// DefaultSessionTolerance absorbs the gap between the provider minting a token and the
// login flow writing last_login_at for that same login.
const DefaultSessionTolerance = 3 * time.Second

// Freshness is whether a session is still the most recent login for its account.
type Freshness int

const (
	Fresh Freshness = iota
	Stale
)

func (f Freshness) String() string {
	if f == Stale {
		return "stale"
	}
	return "fresh"
}

// CompareLogin reports Stale only when both instants are known and the recorded login
// happened more than tolerance after the token was issued. Comparison is in whole milliseconds.
func CompareLogin(issuedAt, lastLoginAt *time.Time, tolerance time.Duration) Freshness {
	if issuedAt == nil || lastLoginAt == nil {
		return Fresh
	}
	delta := lastLoginAt.UnixMilli() - issuedAt.UnixMilli()
	if delta > tolerance.Milliseconds() {
		return Stale
	}
	return Fresh
}

// FreshnessResult carries the verdict plus the instants it was based on.
type FreshnessResult struct {
	Freshness   Freshness
	IssuedAt    *time.Time
	LastLoginAt *time.Time
}

// FreshnessArbiter decides whether a session has been superseded by a newer login.
type FreshnessArbiter interface {
	Check(session *sessions.Session, profile *users.Profile) FreshnessResult
}

// TimestampArbiter compares the token issue time against the profile's last login time.
type TimestampArbiter struct {
	Tolerance time.Duration
}

var _ FreshnessArbiter = (*TimestampArbiter)(nil)

func NewTimestampArbiter(tolerance time.Duration) *TimestampArbiter {
	return &TimestampArbiter{Tolerance: tolerance}
}

func (a *TimestampArbiter) Check(session *sessions.Session, profile *users.Profile) FreshnessResult {
	result := FreshnessResult{Freshness: Fresh}
	if profile != nil {
		result.LastLoginAt = profile.LastLoginAt
	}
	if session != nil {
		if iat, ok := jwt.IssuedAt(session.AccessToken); ok {
			result.IssuedAt = &iat
		}
	}
	result.Freshness = CompareLogin(result.IssuedAt, result.LastLoginAt, a.Tolerance)
	return result
}
