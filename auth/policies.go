package auth

import (
	"fmt"
	"strings"
)

// AdminFailurePolicy decides what happens to an admin-area request when the
// identity or profile lookup fails.
type AdminFailurePolicy int

const (
	// AdminFailOpen lets the request through without identity headers.
	AdminFailOpen AdminFailurePolicy = iota
	// AdminFailToEntry sends the request to the admin entry page.
	AdminFailToEntry
)

func (p AdminFailurePolicy) String() string {
	if p == AdminFailToEntry {
		return "entry"
	}
	return "open"
}

func ParseAdminFailurePolicy(name string) (AdminFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "open":
		return AdminFailOpen, nil
	case "entry":
		return AdminFailToEntry, nil
	}
	return AdminFailOpen, fmt.Errorf("[auth ParseAdminFailurePolicy] %q: %w", name, UnknownFailurePolicyErr)
}

func (p AdminFailurePolicy) decide(routes Routes, requestPath string, err error) Decision {
	if p == AdminFailToEntry && requestPath != routes.AdminEntry {
		d := redirect(routes.AdminEntry, OutcomeLookupFailed)
		d.Err = err
		return d
	}
	d := allow(OutcomeLookupFailed)
	d.Err = err
	return d
}

// ProtectedFailurePolicy decides what happens to a protected request when the
// identity or profile lookup fails.
type ProtectedFailurePolicy int

const (
	// ProtectedFailClosed sends the request to the login page.
	ProtectedFailClosed ProtectedFailurePolicy = iota
	// ProtectedFailOpen lets the request through without identity headers.
	ProtectedFailOpen
)

func (p ProtectedFailurePolicy) String() string {
	if p == ProtectedFailOpen {
		return "open"
	}
	return "closed"
}

func ParseProtectedFailurePolicy(name string) (ProtectedFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "closed":
		return ProtectedFailClosed, nil
	case "open":
		return ProtectedFailOpen, nil
	}
	return ProtectedFailClosed, fmt.Errorf("[auth ParseProtectedFailurePolicy] %q: %w", name, UnknownFailurePolicyErr)
}

func (p ProtectedFailurePolicy) decide(routes Routes, requestURI string, err error) Decision {
	var d Decision
	if p == ProtectedFailOpen {
		d = allow(OutcomeLookupFailed)
	} else {
		d = redirect(routes.loginURL(requestURI), OutcomeLookupFailed)
	}
	d.Err = err
	return d
}
