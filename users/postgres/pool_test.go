package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/woniu9524/love-ludo-sub000/users/postgres"
)

func TestPoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &postgres.PoolConfig{ConnString: "postgres://localhost/db"}
		cfg.ApplyDefaults()
		require.Equal(t, int32(10), cfg.MaxConns)
		require.Equal(t, int32(2), cfg.MinConns)
		require.Equal(t, 30*time.Minute, cfg.MaxConnIdleTime)
		require.Equal(t, 5*time.Second, cfg.ConnectTimeout)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing connection string", func(t *testing.T) {
		_, err := postgres.NewPool(context.Background(), &postgres.PoolConfig{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "connection string is required")
	})

	t.Run("min above max", func(t *testing.T) {
		cfg := &postgres.PoolConfig{ConnString: "postgres://localhost/db", MaxConns: 2, MinConns: 4}
		require.Error(t, cfg.Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := postgres.NewPool(context.Background(), nil)
		require.Error(t, err)
	})
}
