package auth

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for user records.
type Repository interface {
	// FindByEmail looks a user up by exact email. Absence is reported as
	// (nil, nil), not as an error.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user and returns the store-assigned id.
	// Returns ErrEmailTaken when the email unique constraint fires.
	Create(ctx context.Context, u *User) (uuid.UUID, error)
}
