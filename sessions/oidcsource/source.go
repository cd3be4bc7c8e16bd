package oidcsource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"
	apperrors "github.com/woniu9524/love-ludo-sub000/internal/errors"
	"github.com/woniu9524/love-ludo-sub000/sessions"
	"golang.org/x/oauth2"
)

var (
	_ sessions.Source  = (*Source)(nil)
	_ sessions.Revoker = (*Source)(nil)
)

// Config describes the external auth provider.
type Config struct {
	IssuerURL string
	ClientID  string // Expected token audience; empty skips the audience check
	Cookies   sessions.CookieNames
}

// Source resolves sessions by verifying the access token against the provider's
// published keys. The provider stays the authority on signatures and expiry.
type Source struct {
	provider      *oidc.Provider
	verifier      *oidc.IDTokenVerifier
	cookies       sessions.CookieNames
	clientID      string
	revocationURL string
	httpClient    *http.Client
}

type providerClaims struct {
	Issuer             string `json:"issuer"`
	JWKSURL            string `json:"jwks_uri"`
	RevocationEndpoint string `json:"revocation_endpoint"`
}

type tokenClaims struct {
	Email string `json:"email"`
}

// New discovers the provider at cfg.IssuerURL.
func New(ctx context.Context, cfg Config) (*Source, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("[oidcsource New] failed to create OIDC provider: %w", err)
	}

	var claims providerClaims
	if err := provider.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[oidcsource New] failed to read provider metadata: %w", err)
	}

	keys := newKeySet(claims.JWKSURL, http.DefaultClient)
	s := NewWithVerifier(oidc.NewVerifier(claims.Issuer, keys, &oidc.Config{
		ClientID:          cfg.ClientID,
		SkipClientIDCheck: cfg.ClientID == "",
	}), cfg)
	s.provider = provider
	s.revocationURL = claims.RevocationEndpoint
	return s, nil
}

// NewWithVerifier builds a Source around an existing verifier, without provider
// discovery. Sessions whose token has no email claim are then anonymous.
func NewWithVerifier(verifier *oidc.IDTokenVerifier, cfg Config) *Source {
	return &Source{
		verifier:   verifier,
		cookies:    cfg.Cookies,
		clientID:   cfg.ClientID,
		httpClient: http.DefaultClient,
	}
}

func (s *Source) Current(ctx context.Context, r *http.Request) (*sessions.Session, error) {
	rawToken := sessions.TokenFromRequest(r, s.cookies)
	if rawToken == "" {
		return nil, nil
	}

	verifyCtx, failure := withFetchFailure(ctx)
	token, err := s.verifier.Verify(verifyCtx, rawToken)
	if err != nil {
		if failure.err != nil {
			return nil, fmt.Errorf("[oidcsource Current] %w: %w", apperrors.ErrIdentityLookup, failure.err)
		}
		if apperrors.Is(err, context.Canceled) || apperrors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("[oidcsource Current] %w: %w", apperrors.ErrIdentityLookup, err)
		}
		var expired *oidc.TokenExpiredError
		if apperrors.As(err, &expired) {
			log.Debug().Time("expiry", expired.Expiry).Msg("session token expired")
		} else {
			log.Debug().Err(err).Msg("session token rejected")
		}
		return nil, nil
	}

	var claims tokenClaims
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[oidcsource Current] %w: %w", apperrors.ErrInvalidToken, err)
	}

	email := claims.Email
	if email == "" && s.provider != nil {
		info, err := s.provider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: rawToken}))
		if err != nil {
			return nil, fmt.Errorf("[oidcsource Current] %w: userinfo: %w", apperrors.ErrIdentityLookup, err)
		}
		email = info.Email
	}

	return &sessions.Session{
		UserID:       token.Subject,
		Email:        email,
		AccessToken:  rawToken,
		RefreshToken: sessions.RefreshTokenFromRequest(r, s.cookies),
	}, nil
}

// Revoke asks the provider to revoke the session's refresh token, or its access
// token when no refresh token is known. Providers without a revocation endpoint
// are a no-op.
func (s *Source) Revoke(ctx context.Context, session *sessions.Session) error {
	if s.revocationURL == "" || session == nil {
		return nil
	}

	form := url.Values{}
	if session.RefreshToken != "" {
		form.Set("token", session.RefreshToken)
		form.Set("token_type_hint", "refresh_token")
	} else {
		form.Set("token", session.AccessToken)
		form.Set("token_type_hint", "access_token")
	}
	if s.clientID != "" {
		form.Set("client_id", s.clientID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.revocationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("[oidcsource Revoke] failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[oidcsource Revoke] revocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("[oidcsource Revoke] revocation endpoint returned %d", resp.StatusCode)
	}
	return nil
}
