package sessions

import (
	"net/http"
	"strings"
)

// CookieNames is the cookie pair the auth provider's client library writes.
type CookieNames struct {
	Access  string
	Refresh string
}

// TokenFromRequest returns the access token from the access cookie, falling back to
// an Authorization bearer header for API clients. Empty means anonymous.
func TokenFromRequest(r *http.Request, names CookieNames) string {
	if cookie, err := r.Cookie(names.Access); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RefreshTokenFromRequest returns the refresh cookie value, if any.
func RefreshTokenFromRequest(r *http.Request, names CookieNames) string {
	if cookie, err := r.Cookie(names.Refresh); err == nil {
		return cookie.Value
	}
	return ""
}

// ClearCookies expires both session cookies on the client. This is advisory;
// the provider's own sign-out is what invalidates the session.
func ClearCookies(w http.ResponseWriter, names CookieNames) {
	for _, name := range []string{names.Access, names.Refresh} {
		if name == "" {
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
