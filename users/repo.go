package users

import "context"

// ProfileRepo reads account profiles from the backing store.
// GetByID returns errors.ErrUserNotFound when no row exists.
type ProfileRepo interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
}
