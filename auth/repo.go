package auth

import (
	"github.com/woniu9524/love-ludo-sub000/sessions"
	"github.com/woniu9524/love-ludo-sub000/users"
)

// Repos holds the collaborators the Mediator consults for admin and protected requests.
type Repos struct {
	Sessions sessions.Source   // Resolves the session bound to a request
	Profiles users.ProfileRepo // Reads the account row for a session
}

func (r Repos) validate() error {
	if r.Sessions == nil {
		return MissingSessionSourceErr
	}
	if r.Profiles == nil {
		return MissingProfileRepoErr
	}
	return nil
}
