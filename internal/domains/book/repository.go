package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for book records. Every read
// joins the author row; absence is reported as a nil value, never as an
// error.
type Repository interface {
	// List returns one page of books, skipping page*limit records. Order
	// is pinned to insertion order so pages are deterministic, but
	// cross-page stability under concurrent writes is not guaranteed.
	List(ctx context.Context, page, limit int) ([]Book, error)

	// GetByID returns (nil, nil) when no book matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	Create(ctx context.Context, b *Book) (uuid.UUID, error)

	// Update replaces the mutable fields of an existing record.
	Update(ctx context.Context, b *Book) error

	// Delete removes a book by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
