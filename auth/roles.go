package auth

import (
	"strings"

	"github.com/woniu9524/love-ludo-sub000/users"
)

// RoleResolver decides admin privilege from a fixed email allow-list.
type RoleResolver struct {
	admins map[string]struct{}
}

func NewRoleResolver(adminEmails []string) *RoleResolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if key := normalizeEmail(email); key != "" {
			admins[key] = struct{}{}
		}
	}
	return &RoleResolver{admins: admins}
}

// Resolve returns RoleAdmin only for emails on the allow-list, compared case-insensitively.
func (r *RoleResolver) Resolve(email string) users.RoleType {
	if r.IsAdmin(email) {
		return users.RoleAdmin
	}
	return users.RoleRegular
}

func (r *RoleResolver) IsAdmin(email string) bool {
	key := normalizeEmail(email)
	if key == "" {
		return false
	}
	_, ok := r.admins[key]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
