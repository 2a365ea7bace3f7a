package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenIssuer signs a claim set into a bearer token.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// Service orchestrates registration and login.
type Service interface {
	// Register validates the payload, checks email uniqueness, hashes the
	// password and persists the user.
	Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req LoginRequest) (string, error)
}
