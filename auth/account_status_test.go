package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/woniu9524/love-ludo-sub000/auth"
	"github.com/woniu9524/love-ludo-sub000/internal/utils"
)

func TestAccountStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("future expiry is active", func(t *testing.T) {
		require.Equal(t, auth.StatusActive, auth.AccountStatus(utils.Ptr(now.Add(time.Millisecond)), now))
		require.Equal(t, auth.StatusActive, auth.AccountStatus(utils.Ptr(now.AddDate(1, 0, 0)), now))
	})

	t.Run("expiry equal to now is expired", func(t *testing.T) {
		require.Equal(t, auth.StatusExpired, auth.AccountStatus(utils.Ptr(now), now))
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		require.Equal(t, auth.StatusExpired, auth.AccountStatus(utils.Ptr(now.Add(-time.Second)), now))
	})

	t.Run("no expiry recorded is expired", func(t *testing.T) {
		require.Equal(t, auth.StatusExpired, auth.AccountStatus(nil, now))
	})

	t.Run("zone does not matter", func(t *testing.T) {
		shanghai := time.FixedZone("CST", 8*60*60)
		require.Equal(t, auth.StatusActive, auth.AccountStatus(utils.Ptr(now.Add(time.Hour).In(shanghai)), now))
	})
}
