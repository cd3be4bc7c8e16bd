package oidcsource_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/woniu9524/love-ludo-sub000/internal/errors"
	"github.com/woniu9524/love-ludo-sub000/sessions"
	"github.com/woniu9524/love-ludo-sub000/sessions/oidcsource"
)

const (
	testKeyID    = "test-key"
	testClientID = "love-ludo"
)

var testCookies = sessions.CookieNames{Access: "sb-access-token", Refresh: "sb-refresh-token"}

// fakeProvider serves discovery, keys, userinfo and revocation for a single signing key.
type fakeProvider struct {
	server *httptest.Server
	key    *rsa.PrivateKey

	lock          sync.Mutex
	userInfoEmail string
	userInfoFails bool
	keysFail      bool
	revoked       []string
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	p := &fakeProvider{key: key}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"issuer":                                p.server.URL,
			"authorization_endpoint":                p.server.URL + "/authorize",
			"token_endpoint":                        p.server.URL + "/token",
			"jwks_uri":                              p.server.URL + "/jwks",
			"userinfo_endpoint":                     p.server.URL + "/userinfo",
			"revocation_endpoint":                   p.server.URL + "/revoke",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("GET /jwks", func(w http.ResponseWriter, r *http.Request) {
		p.lock.Lock()
		fail := p.keysFail
		p.lock.Unlock()
		if fail {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": testKeyID,
				"alg": "RS256",
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		p.lock.Lock()
		defer p.lock.Unlock()
		if p.userInfoFails {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{"sub": "user-1", "email": p.userInfoEmail, "email_verified": true})
	})
	mux.HandleFunc("POST /revoke", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		p.lock.Lock()
		defer p.lock.Unlock()
		p.revoked = append(p.revoked, r.PostForm.Get("token_type_hint")+":"+r.PostForm.Get("token"))
		w.WriteHeader(http.StatusOK)
	})

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (p *fakeProvider) token(t *testing.T, key *rsa.PrivateKey, claims jwtlib.MapClaims) string {
	t.Helper()
	base := jwtlib.MapClaims{
		"iss": p.server.URL,
		"aud": testClientID,
		"sub": "user-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		base[k] = v
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, base)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/lobby", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: testCookies.Access, Value: token})
	}
	return r
}

func TestSource(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider(t)

	source, err := oidcsource.New(ctx, oidcsource.Config{
		IssuerURL: provider.server.URL,
		ClientID:  testClientID,
		Cookies:   testCookies,
	})
	require.NoError(t, err)

	t.Run("verified token with email", func(t *testing.T) {
		token := provider.token(t, provider.key, jwtlib.MapClaims{"email": "player@example.com"})
		r := requestWithToken(token)
		r.AddCookie(&http.Cookie{Name: testCookies.Refresh, Value: "refresh-1"})

		session, err := source.Current(ctx, r)
		require.NoError(t, err)
		require.NotNil(t, session)
		require.Equal(t, "user-1", session.UserID)
		require.Equal(t, "player@example.com", session.Email)
		require.Equal(t, token, session.AccessToken)
		require.Equal(t, "refresh-1", session.RefreshToken)
	})

	t.Run("anonymous", func(t *testing.T) {
		session, err := source.Current(ctx, requestWithToken(""))
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("expired token", func(t *testing.T) {
		token := provider.token(t, provider.key, jwtlib.MapClaims{
			"email": "player@example.com",
			"exp":   time.Now().Add(-time.Minute).Unix(),
		})

		session, err := source.Current(ctx, requestWithToken(token))
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("foreign signature", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		token := provider.token(t, otherKey, jwtlib.MapClaims{"email": "player@example.com"})

		session, err := source.Current(ctx, requestWithToken(token))
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token := provider.token(t, provider.key, jwtlib.MapClaims{"aud": "someone-else"})

		session, err := source.Current(ctx, requestWithToken(token))
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("email from userinfo", func(t *testing.T) {
		provider.lock.Lock()
		provider.userInfoEmail = "info@example.com"
		provider.lock.Unlock()

		session, err := source.Current(ctx, requestWithToken(provider.token(t, provider.key, nil)))
		require.NoError(t, err)
		require.NotNil(t, session)
		require.Equal(t, "info@example.com", session.Email)
	})

	t.Run("userinfo failure is a lookup error", func(t *testing.T) {
		provider.lock.Lock()
		provider.userInfoFails = true
		provider.lock.Unlock()
		defer func() {
			provider.lock.Lock()
			provider.userInfoFails = false
			provider.lock.Unlock()
		}()

		_, err := source.Current(ctx, requestWithToken(provider.token(t, provider.key, nil)))
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrIdentityLookup))
	})

	t.Run("revoke prefers the refresh token", func(t *testing.T) {
		err := source.Revoke(ctx, &sessions.Session{AccessToken: "access-1", RefreshToken: "refresh-1"})
		require.NoError(t, err)

		err = source.Revoke(ctx, &sessions.Session{AccessToken: "access-2"})
		require.NoError(t, err)

		provider.lock.Lock()
		defer provider.lock.Unlock()
		require.Equal(t, []string{"refresh_token:refresh-1", "access_token:access-2"}, provider.revoked)
	})
}

func TestNewUnreachableProvider(t *testing.T) {
	_, err := oidcsource.New(context.Background(), oidcsource.Config{IssuerURL: "http://127.0.0.1:1"})
	require.Error(t, err)
}

func TestKeyEndpointOutage(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable keys are a lookup error", func(t *testing.T) {
		provider := newFakeProvider(t)
		provider.lock.Lock()
		provider.keysFail = true
		provider.lock.Unlock()

		source, err := oidcsource.New(ctx, oidcsource.Config{
			IssuerURL: provider.server.URL,
			ClientID:  testClientID,
			Cookies:   testCookies,
		})
		require.NoError(t, err)

		token := provider.token(t, provider.key, jwtlib.MapClaims{"email": "player@example.com"})
		session, err := source.Current(ctx, requestWithToken(token))
		require.Nil(t, session)
		require.True(t, errors.Is(err, errors.ErrIdentityLookup))

		provider.lock.Lock()
		provider.keysFail = false
		provider.lock.Unlock()

		session, err = source.Current(ctx, requestWithToken(token))
		require.NoError(t, err)
		require.NotNil(t, session)
		require.Equal(t, "player@example.com", session.Email)
	})

	t.Run("unreachable keys are a lookup error", func(t *testing.T) {
		provider := newFakeProvider(t)

		source, err := oidcsource.New(ctx, oidcsource.Config{
			IssuerURL: provider.server.URL,
			ClientID:  testClientID,
			Cookies:   testCookies,
		})
		require.NoError(t, err)

		token := provider.token(t, provider.key, jwtlib.MapClaims{"email": "player@example.com"})
		provider.server.Close()

		session, err := source.Current(ctx, requestWithToken(token))
		require.Nil(t, session)
		require.True(t, errors.Is(err, errors.ErrIdentityLookup))
	})
}
