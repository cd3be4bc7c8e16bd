package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/woniu9524/love-ludo-sub000/auth"
	"github.com/woniu9524/love-ludo-sub000/sessions"
)

var identityHeaders = []string{HeaderUserID, HeaderUserEmail, HeaderUserRole}

// AccessMiddleware asks the Mediator about every request and applies its decision:
// a 302 redirect, or the request passed on with identity headers stamped.
func (s *Server) AccessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Identity headers are only ever set here.
		for _, h := range identityHeaders {
			r.Header.Del(h)
		}

		d := s.mediator.Decide(r)
		s.recordDecision(r, d)

		if d.ClearSession {
			sessions.ClearCookies(w, s.cookies)
			s.revoke(r.Context(), d.Session)
		}
		if d.Action == auth.ActionRedirect {
			http.Redirect(w, r, d.Location, http.StatusFound)
			return
		}
		if d.Identity != nil {
			r.Header.Set(HeaderUserID, d.Identity.UserID)
			r.Header.Set(HeaderUserEmail, d.Identity.Email)
			r.Header.Set(HeaderUserRole, string(d.Identity.Role))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recordDecision(r *http.Request, d auth.Decision) {
	class := d.Class.String()
	s.recorder.RecordDecision(class, string(d.Outcome))

	switch d.Class {
	case auth.PathAdmin, auth.PathProtected:
		s.recorder.RecordLookupLatency(d.LookupDuration)
	default:
		return
	}

	switch d.Outcome {
	case auth.OutcomeLookupFailed:
		s.recorder.RecordLookupFailure(class)
		log.Warn().Err(d.Err).
			Str("request_id", RequestID(r.Context())).
			Str("path", r.URL.Path).
			Str("class", class).
			Str("action", d.Action.String()).
			Msg("identity lookup failed, applying failure policy")
	case auth.OutcomeStaleSession:
		log.Info().
			Str("request_id", RequestID(r.Context())).
			Str("user_id", d.Session.UserID).
			Str("path", r.URL.Path).
			Msg("session superseded by a newer login")
	default:
		log.Debug().
			Str("request_id", RequestID(r.Context())).
			Str("path", r.URL.Path).
			Str("class", class).
			Str("outcome", string(d.Outcome)).
			Str("location", d.Location).
			Msg("access decision")
	}
}

// revoke asks the provider to drop a superseded session when the source supports it.
// Failures are logged and otherwise ignored.
func (s *Server) revoke(ctx context.Context, session *sessions.Session) {
	revoker, ok := s.sessions.(sessions.Revoker)
	if !ok || session == nil {
		return
	}
	if err := revoker.Revoke(ctx, session); err != nil {
		log.Warn().Err(err).Str("user_id", session.UserID).Msg("failed to revoke superseded session")
	}
}
