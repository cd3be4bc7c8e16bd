package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/woniu9524/love-ludo-sub000/internal/errors"
	"github.com/woniu9524/love-ludo-sub000/internal/utils"
	"github.com/woniu9524/love-ludo-sub000/users"
)

var _ users.ProfileRepo = (*ProfileRepo)(nil)

const selectProfileByID = `
	SELECT id::text, email, account_expires_at, last_login_at, last_login_session
	FROM profiles
	WHERE id = $1
`

// ProfileRepo reads account profiles from the profiles table.
// The table is owned by the login and renewal flows; this repo never writes to it.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*users.Profile, error) {
	var (
		profile          users.Profile
		email            *string
		expiresAt        *time.Time
		lastLoginAt      *time.Time
		lastLoginSession *string
	)

	err := r.pool.QueryRow(ctx, selectProfileByID, id).Scan(
		&profile.ID,
		&email,
		&expiresAt,
		&lastLoginAt,
		&lastLoginSession,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[ProfileRepo GetByID] %w: %w", apperrors.ErrProfileLookup, err)
	}

	profile.Email = utils.Value(email)
	profile.AccountExpiresAt = expiresAt
	profile.LastLoginAt = lastLoginAt
	profile.LastLoginSession = utils.Value(lastLoginSession)
	return &profile, nil
}
