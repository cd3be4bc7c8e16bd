package fakeprofilerepo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/woniu9524/love-ludo-sub000/internal/errors"
	"github.com/woniu9524/love-ludo-sub000/users"
)

var _ users.ProfileRepo = (*FakeProfileRepo)(nil)

// FakeProfileRepo is an in-memory ProfileRepo used by tests and the memory store.
type FakeProfileRepo struct {
	profiles map[string]users.Profile
	lock     sync.RWMutex

	// Err, when set, is returned by every GetByID call.
	Err error
	// Calls counts GetByID invocations.
	Calls int
}

func NewFakeProfileRepo() *FakeProfileRepo {
	return &FakeProfileRepo{
		profiles: make(map[string]users.Profile),
	}
}

// Upsert stores a copy of profile, assigning an ID when it has none.
func (pr *FakeProfileRepo) Upsert(profile *users.Profile) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	pr.profiles[profile.ID] = *profile
	return nil
}

func (pr *FakeProfileRepo) GetByID(_ context.Context, id string) (*users.Profile, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	pr.Calls++
	if pr.Err != nil {
		return nil, pr.Err
	}

	profile, ok := pr.profiles[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &profile, nil
}
