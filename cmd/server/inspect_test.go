package main

import (
	"bytes"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestInspectToken(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": "player-1",
		"iat": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	t.Run("issue time only", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, (&InspectTokenCmd{Token: token}).inspect(&out))
		require.Equal(t, "issued at: 2024-01-01T00:00:00.000Z\n", out.String())
	})

	t.Run("compared with last login", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &InspectTokenCmd{
			Token:     token,
			LastLogin: time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC),
			Tolerance: 3 * time.Second,
		}
		require.NoError(t, cmd.inspect(&out))
		require.Contains(t, out.String(), "delta: 5000ms (tolerance 3000ms)")
		require.Contains(t, out.String(), "session: stale")
	})

	t.Run("not a token", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, (&InspectTokenCmd{Token: "nope"}).inspect(&out))
		require.Equal(t, "issued at: not present\n", out.String())
	})
}
