package auth

import "time"

// NowTimeFunc is the clock used by the Mediator; tests replace it.
var NowTimeFunc = time.Now

// Status is whether an account's paid membership covers the current instant.
type Status int

const (
	StatusActive Status = iota
	StatusExpired
)

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "expired"
}

// AccountStatus reports Expired when no expiry was ever recorded or when it is not after now.
func AccountStatus(expiresAt *time.Time, now time.Time) Status {
	if expiresAt == nil || !expiresAt.After(now) {
		return StatusExpired
	}
	return StatusActive
}
