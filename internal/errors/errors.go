package errors

import (
	"errors"
	"fmt"
)

// Common error types for the access gateway
var (
	// Identity errors
	ErrIdentityLookup = errors.New("identity lookup failed")
	ErrProfileLookup  = errors.New("profile lookup failed")
	ErrUserNotFound   = errors.New("user not found")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
