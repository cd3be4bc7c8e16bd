package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/woniu9524/love-ludo-sub000/internal/errors"
)

type Config interface {
	EnvConfig
	CorsConfig
	AccessConfig
	ProviderConfig
	StoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetMetricsEnabled() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type AccessConfig interface {
	GetAdminEmails() []string
	GetSessionTolerance() time.Duration
	GetAdminFailurePolicy() string
	GetProtectedFailurePolicy() string
}

type ProviderConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetAccessCookieName() string
	GetRefreshCookieName() string
}

type StoreConfig interface {
	GetStoreType() string
	GetDatabaseURL() string
	GetMaxConns() int32
	GetMinConns() int32
}

type mainConfig struct {
	EnvVars
	Cors
	Access
	Provider
	Store
}

var _ Config = mainConfig{}

// Load reads a .env file when present and then the process environment.
// The result is immutable; it is read once at start up and passed to constructors.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := mainConfig{}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("[config Load] parsing environment: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[config Load] %s", err.Error())
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if c.Provider.IssuerURL == "" {
		return fmt.Errorf("AUTH_ISSUER_URL is required")
	}
	for _, origin := range c.Cors.Origins {
		if strings.Contains(origin, "*") {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins, got %q", origin)
		}
	}
	if c.Access.SessionTolerance < 0 {
		return fmt.Errorf("SESSION_TOLERANCE must not be negative")
	}
	switch c.Access.AdminFailurePolicy {
	case AdminFailOpen, AdminFailToEntry:
	default:
		return fmt.Errorf("ADMIN_FAILURE_POLICY must be %q or %q", AdminFailOpen, AdminFailToEntry)
	}
	switch c.Access.ProtectedFailurePolicy {
	case ProtectedFailClosed, ProtectedFailOpen:
	default:
		return fmt.Errorf("PROTECTED_FAILURE_POLICY must be %q or %q", ProtectedFailClosed, ProtectedFailOpen)
	}
	switch c.Store.Type {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_TYPE is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("STORE_TYPE must be %q or %q", StoreMemory, StorePostgres)
	}
	return nil
}
