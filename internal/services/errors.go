package services

import "errors"

// Expected failure paths. Handlers map these to envelope errors; nothing
// else escapes a service except transport/store failures.
var (
	ErrNotFound          = errors.New("not found")
	ErrBadCreds          = errors.New("invalid email or password")
	ErrInactiveAdmin     = errors.New("account is inactive")
	ErrOfferExpired      = errors.New("offer has expired")
	ErrOfferLimitReached = errors.New("offer usage limit reached")
	ErrOfferInactive     = errors.New("offer is not active")
)
