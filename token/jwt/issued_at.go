package jwt

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// segmentParser decodes base64url token segments, with or without padding.
var segmentParser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// urlAlphabet maps the standard base64 alphabet onto the url-safe one, so payloads
// encoded with either decode the same way.
var urlAlphabet = strings.NewReplacer("+", "-", "/", "_")

// IssuedAt returns the "iat" instant carried in the payload of a compact session token.
// The signature is not checked: the result is a freshness signal only and must never be
// treated as proof of identity. Malformed tokens, undecodable payloads and a missing or
// non-numeric "iat" all report false.
func IssuedAt(rawToken string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(rawToken), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := segmentParser.DecodeSegment(urlAlphabet.Replace(parts[1]))
	if err != nil || !utf8.Valid(payload) {
		return time.Time{}, false
	}

	claims := jwtlib.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, false
	}

	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		return time.Time{}, false
	}

	// iat is whole seconds; the comparison downstream works in milliseconds.
	return time.UnixMilli(iat.Unix() * 1000).UTC(), true
}
