package auth

import "errors"

var (
	UnknownFailurePolicyErr = errors.New("unknown failure policy")
	MissingSessionSourceErr = errors.New("session source not configured")
	MissingProfileRepoErr   = errors.New("profile repo not configured")
)
