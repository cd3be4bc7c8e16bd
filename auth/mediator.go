package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/woniu9524/love-ludo-sub000/internal/errors"
	"github.com/woniu9524/love-ludo-sub000/sessions"
	"github.com/woniu9524/love-ludo-sub000/users"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LastLoginTimeLayout formats the conflicting login time on the session-expired redirect.
const LastLoginTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var tracer trace.Tracer = otel.Tracer("github.com/woniu9524/love-ludo-sub000/auth")

// Action is what the HTTP layer must do with a request.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

func (a Action) String() string {
	if a == ActionRedirect {
		return "redirect"
	}
	return "allow"
}

// Outcome names the branch that produced a Decision. Used for logs and metrics.
type Outcome string

const (
	OutcomePublic         Outcome = "public"
	OutcomePassthrough    Outcome = "passthrough"
	OutcomeAllowed        Outcome = "allowed"
	OutcomeAdminLogin     Outcome = "admin_login"
	OutcomeAdminDenied    Outcome = "admin_denied"
	OutcomeAdminHome      Outcome = "admin_home"
	OutcomeLoginRequired  Outcome = "login_required"
	OutcomeAccountExpired Outcome = "account_expired"
	OutcomeStaleSession   Outcome = "stale_session"
	OutcomeLookupFailed   Outcome = "lookup_failed"
)

// ForwardedRole is the role value handed to downstream handlers.
type ForwardedRole string

const (
	ForwardedAdmin        ForwardedRole = "admin"         // Admin inside the admin console
	ForwardedAdminPlaying ForwardedRole = "admin-playing" // Admin using the game pages
	ForwardedUser         ForwardedRole = "user"          // Regular account
)

// ForwardedIdentity is attached to allowed admin and protected requests.
type ForwardedIdentity struct {
	UserID string
	Email  string
	Role   ForwardedRole
}

// Decision is the Mediator's verdict for one request.
type Decision struct {
	Action   Action
	Location string // Redirect target, set when Action is ActionRedirect
	Class    PathClass
	Outcome  Outcome
	Identity *ForwardedIdentity // Nil when no identity is forwarded

	// ClearSession asks the HTTP layer to drop the session cookies. Session is the
	// superseded session, for best-effort revocation.
	ClearSession bool
	Session      *sessions.Session

	Err            error         // Lookup failure absorbed by a failure policy
	LookupDuration time.Duration // Time spent in identity and profile lookups
}

func allow(outcome Outcome) Decision {
	return Decision{Action: ActionAllow, Outcome: outcome}
}

func allowAs(session *sessions.Session, role ForwardedRole) Decision {
	d := allow(OutcomeAllowed)
	d.Identity = &ForwardedIdentity{UserID: session.UserID, Email: session.Email, Role: role}
	return d
}

func redirect(location string, outcome Outcome) Decision {
	return Decision{Action: ActionRedirect, Location: location, Outcome: outcome}
}

// Routes are the destinations the Mediator redirects to.
type Routes struct {
	Login          string
	ExpiryNotice   string
	SessionExpired string
	Unauthorized   string
	AdminEntry     string
	AdminHome      string
}

func (r Routes) loginURL(requestURI string) string {
	return r.Login + "?" + url.Values{"redirectedFrom": {requestURI}}.Encode()
}

func (r Routes) sessionExpiredURL(email string, lastLoginAt *time.Time) string {
	q := url.Values{"email": {email}}
	if lastLoginAt != nil {
		q.Set("last_login_time", lastLoginAt.UTC().Format(LastLoginTimeLayout))
	}
	return r.SessionExpired + "?" + q.Encode()
}

// MediatorConfig is the immutable configuration of a Mediator.
type MediatorConfig struct {
	Paths            PathSets
	Routes           Routes
	AdminEmails      []string
	Freshness        FreshnessArbiter // Defaults to a TimestampArbiter with DefaultSessionTolerance
	AdminFailure     AdminFailurePolicy
	ProtectedFailure ProtectedFailurePolicy
}

// Mediator decides, per request, whether to pass it through, redirect it, or
// forward it with identity attached. It holds no per-request state.
type Mediator struct {
	repos            Repos
	classifier       *Classifier
	roles            *RoleResolver
	freshness        FreshnessArbiter
	routes           Routes
	adminFailure     AdminFailurePolicy
	protectedFailure ProtectedFailurePolicy
}

func NewMediator(repos Repos, cfg MediatorConfig) (*Mediator, error) {
	if err := repos.validate(); err != nil {
		return nil, fmt.Errorf("[auth NewMediator] %w", err)
	}
	freshness := cfg.Freshness
	if freshness == nil {
		freshness = NewTimestampArbiter(DefaultSessionTolerance)
	}
	return &Mediator{
		repos:            repos,
		classifier:       NewClassifier(cfg.Paths),
		roles:            NewRoleResolver(cfg.AdminEmails),
		freshness:        freshness,
		routes:           cfg.Routes,
		adminFailure:     cfg.AdminFailure,
		protectedFailure: cfg.ProtectedFailure,
	}, nil
}

// Classify exposes the Mediator's classifier.
func (m *Mediator) Classify(requestPath string) PathClass {
	return m.classifier.Classify(requestPath)
}

// Decide classifies the request and, for admin and protected paths, consults the
// session source and profile repo. Public and other paths never touch a backend.
func (m *Mediator) Decide(r *http.Request) Decision {
	p := NormalizePath(r.URL.Path)
	ctx, span := tracer.Start(r.Context(), "auth.Mediator.Decide",
		trace.WithAttributes(attribute.String("http.path", p)))
	defer span.End()

	class := m.classifier.Classify(p)
	var d Decision
	switch class {
	case PathAdmin:
		d = m.decideAdmin(ctx, r, p)
	case PathProtected:
		d = m.decideProtected(ctx, r, p)
	case PathPublic:
		d = allow(OutcomePublic)
	default:
		d = allow(OutcomePassthrough)
	}
	d.Class = class

	span.SetAttributes(
		attribute.String("access.class", class.String()),
		attribute.String("access.action", d.Action.String()),
		attribute.String("access.outcome", string(d.Outcome)),
	)
	if d.Err != nil {
		span.RecordError(d.Err)
		span.SetStatus(codes.Error, string(OutcomeLookupFailed))
	}
	return d
}

func (m *Mediator) decideAdmin(ctx context.Context, r *http.Request, p string) Decision {
	start := time.Now()
	session, err := m.currentSession(ctx, r)
	elapsed := time.Since(start)
	if err != nil {
		d := m.adminFailure.decide(m.routes, p, err)
		d.LookupDuration = elapsed
		return d
	}

	atEntry := p == m.routes.AdminEntry
	var d Decision
	switch {
	case session == nil && atEntry:
		d = allow(OutcomeAdminLogin)
	case session == nil:
		d = redirect(m.routes.AdminEntry, OutcomeAdminLogin)
	case !m.roles.IsAdmin(session.Email) && atEntry:
		d = allow(OutcomeAdminDenied)
	case !m.roles.IsAdmin(session.Email):
		d = redirect(m.routes.Unauthorized, OutcomeAdminDenied)
	case atEntry:
		d = redirect(m.routes.AdminHome, OutcomeAdminHome)
	default:
		d = allowAs(session, ForwardedAdmin)
	}
	d.LookupDuration = elapsed
	return d
}

func (m *Mediator) decideProtected(ctx context.Context, r *http.Request, p string) Decision {
	requestURI := p
	if r.URL.RawQuery != "" {
		requestURI += "?" + r.URL.RawQuery
	}

	start := time.Now()
	session, err := m.currentSession(ctx, r)
	if err != nil {
		d := m.protectedFailure.decide(m.routes, requestURI, err)
		d.LookupDuration = time.Since(start)
		return d
	}
	if session == nil {
		d := redirect(m.routes.loginURL(requestURI), OutcomeLoginRequired)
		d.LookupDuration = time.Since(start)
		return d
	}

	role := m.roles.Resolve(session.Email)
	profile, err := m.profile(ctx, session.UserID)
	elapsed := time.Since(start)
	if err != nil {
		d := m.protectedFailure.decide(m.routes, requestURI, err)
		d.LookupDuration = elapsed
		return d
	}

	d := m.gate(session, profile, role, p)
	d.LookupDuration = elapsed
	return d
}

// gate runs the account status and freshness checks for an authenticated protected request.
func (m *Mediator) gate(session *sessions.Session, profile *users.Profile, role users.RoleType, p string) Decision {
	if AccountStatus(profile.AccountExpiresAt, NowTimeFunc()) == StatusExpired && p != m.routes.ExpiryNotice {
		return redirect(m.routes.ExpiryNotice, OutcomeAccountExpired)
	}
	if role == users.RoleAdmin {
		return allowAs(session, ForwardedAdminPlaying)
	}

	verdict := m.freshness.Check(session, profile)
	if verdict.Freshness == Stale {
		email := session.Email
		if email == "" {
			email = profile.Email
		}
		d := redirect(m.routes.sessionExpiredURL(email, verdict.LastLoginAt), OutcomeStaleSession)
		d.ClearSession = true
		d.Session = session
		return d
	}
	return allowAs(session, ForwardedUser)
}

func (m *Mediator) currentSession(ctx context.Context, r *http.Request) (*sessions.Session, error) {
	session, err := m.repos.Sessions.Current(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("[auth Mediator] session: %w", err)
	}
	return session, nil
}

// profile treats a missing row as a profile with nothing recorded, which the
// status gate then reads as expired.
func (m *Mediator) profile(ctx context.Context, userID string) (*users.Profile, error) {
	profile, err := m.repos.Profiles.GetByID(ctx, userID)
	if apperrors.Is(err, apperrors.ErrUserNotFound) || (err == nil && profile == nil) {
		return &users.Profile{ID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[auth Mediator] profile %s: %w", userID, err)
	}
	return profile, nil
}
