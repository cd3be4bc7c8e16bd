package sessions

import (
	"context"
	"net/http"
)

// Session is the identity the auth provider vouches for on the current request.
type Session struct {
	UserID       string // Account identifier (token subject)
	Email        string // Account email, used for role resolution
	AccessToken  string // Raw bearer token; only its unverified issue time is read here
	RefreshToken string // Companion refresh token, when the client sent one
}

// Source resolves the session bound to a request.
// Current returns (nil, nil) for anonymous requests and an error only when the
// provider could not be consulted.
type Source interface {
	Current(ctx context.Context, r *http.Request) (*Session, error)
}

// Revoker is implemented by sources that can ask the provider to invalidate a session.
type Revoker interface {
	Revoke(ctx context.Context, session *Session) error
}
