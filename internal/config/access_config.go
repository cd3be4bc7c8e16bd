package config

import (
	"time"

	"github.com/woniu9524/love-ludo-sub000/internal/utils"
)

// Failure policy names accepted in the environment.
const (
	AdminFailOpen    = "open"
	AdminFailToEntry = "entry"

	ProtectedFailClosed = "closed"
	ProtectedFailOpen   = "open"
)

type Access struct {
	// AdminEmails is a comma separated allow-list of administrator emails.
	AdminEmails string `env:"ADMIN_EMAILS"`

	// SessionTolerance is the slack allowed between token issuance and the
	// last login write of the same login flow.
	SessionTolerance time.Duration `env:"SESSION_TOLERANCE" envDefault:"3s"`

	AdminFailurePolicy     string `env:"ADMIN_FAILURE_POLICY" envDefault:"open"`
	ProtectedFailurePolicy string `env:"PROTECTED_FAILURE_POLICY" envDefault:"closed"`
}

var _ AccessConfig = Access{}

func (a Access) GetAdminEmails() []string {
	return utils.SplitList(a.AdminEmails)
}

func (a Access) GetSessionTolerance() time.Duration {
	return a.SessionTolerance
}

func (a Access) GetAdminFailurePolicy() string {
	return a.AdminFailurePolicy
}

func (a Access) GetProtectedFailurePolicy() string {
	return a.ProtectedFailurePolicy
}
