package fakesessionsource

import (
	"context"
	"net/http"
	"sync"

	"github.com/woniu9524/love-ludo-sub000/sessions"
)

var (
	_ sessions.Source  = (*FakeSource)(nil)
	_ sessions.Revoker = (*FakeSource)(nil)
)

// FakeSource maps access tokens to sessions. Requests without a known token are anonymous.
type FakeSource struct {
	cookies  sessions.CookieNames
	sessions map[string]sessions.Session
	lock     sync.Mutex

	// Err, when set, is returned by every Current call.
	Err error
	// Calls counts Current invocations.
	Calls int
	// Revoked records sessions passed to Revoke.
	Revoked []sessions.Session
}

func NewFakeSource(cookies sessions.CookieNames) *FakeSource {
	return &FakeSource{
		cookies:  cookies,
		sessions: make(map[string]sessions.Session),
	}
}

// Add registers a session under its access token.
func (s *FakeSource) Add(session sessions.Session) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sessions[session.AccessToken] = session
}

func (s *FakeSource) Current(_ context.Context, r *http.Request) (*sessions.Session, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	session, ok := s.sessions[sessions.TokenFromRequest(r, s.cookies)]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *FakeSource) Revoke(_ context.Context, session *sessions.Session) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Revoked = append(s.Revoked, *session)
	return nil
}
