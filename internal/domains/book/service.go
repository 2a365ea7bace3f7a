package book

import (
	"context"

	"github.com/google/uuid"
)

// Service is the validation and shaping layer over the repository.
type Service interface {
	// List coerces page and limit (defaults 0 and 4) and returns the page
	// of books together with the coerced values for the response echo.
	List(ctx context.Context, page, limit string) ([]Book, int, int, error)

	// GetByID converts repository absence into a not-found failure.
	GetByID(ctx context.Context, id string) (*Book, error)

	Create(ctx context.Context, p Payload) (uuid.UUID, error)

	// Update confirms existence first, then persists a full replacement
	// with UpdatedAt forced to the current time.
	Update(ctx context.Context, id string, p Payload) error

	// Delete is idempotent; an absent id still succeeds.
	Delete(ctx context.Context, id string) error
}
