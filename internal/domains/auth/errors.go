package auth

import "errors"

// Repository-level errors
var (
	// ErrEmailTaken is returned when an insert hits the unique constraint
	// on users.email. The service maps it to the same conflict the
	// pre-insert existence check raises, so a race between two concurrent
	// registrations still surfaces as a 403.
	ErrEmailTaken = errors.New("email already taken")
)
