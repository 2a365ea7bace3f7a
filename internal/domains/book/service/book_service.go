package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bookshelf-api/internal/domains/book"
	"bookshelf-api/internal/shared/apperror"
)

const (
	defaultPage  = 0
	defaultLimit = 4
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, page, limit string) ([]book.Book, int, int, error) {
	p := coerce(page, defaultPage)
	l := coerce(limit, defaultLimit)

	books, err := s.repo.List(ctx, p, l)
	if err != nil {
		return nil, 0, 0, err
	}

	return books, p, l, nil
}

func (s *bookService) GetByID(ctx context.Context, id string) (*book.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NotFound("Book Not Found!")
	}

	return b, nil
}

func (s *bookService) Create(ctx context.Context, p book.Payload) (uuid.UUID, error) {
	b, err := coercePayload(p)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create book: %w", err)
	}

	return id, nil
}

func (s *bookService) Update(ctx context.Context, id string, p book.Payload) error {
	bookID, err := parseID(id)
	if err != nil {
		return err
	}

	// Existence is confirmed before any write is attempted.
	existing, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NotFound("Book Not Found!")
	}

	b, err := coercePayload(p)
	if err != nil {
		return err
	}
	b.ID = bookID
	// The caller does not control the update timestamp.
	b.UpdatedAt = time.Now()

	return s.repo.Update(ctx, b)
}

func (s *bookService) Delete(ctx context.Context, id string) error {
	bookID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, bookID)
}

// coercePayload validates the inbound payload and converts its string
// identifier and date fields. Nothing malformed reaches storage.
func coercePayload(p book.Payload) (*book.Book, error) {
	if err := p.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	authorID, err := uuid.Parse(p.AuthorID)
	if err != nil {
		return nil, apperror.Validation("Invalid author reference!")
	}

	publishedYear, err := book.ParseDate(p.PublishedYear)
	if err != nil {
		return nil, apperror.Validation("Invalid publishedYear!")
	}

	now := time.Now()
	createdAt := now
	if p.CreatedAt != "" {
		if createdAt, err = book.ParseDate(p.CreatedAt); err != nil {
			return nil, apperror.Validation("Invalid createdAt!")
		}
	}
	updatedAt := now
	if p.UpdatedAt != "" {
		if updatedAt, err = book.ParseDate(p.UpdatedAt); err != nil {
			return nil, apperror.Validation("Invalid updatedAt!")
		}
	}

	return &book.Book{
		Title:         p.Title,
		AuthorID:      authorID,
		Description:   p.Description,
		Pages:         p.Pages,
		ISBN:          p.ISBN,
		PublishedYear: publishedYear,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func parseID(id string) (uuid.UUID, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid book id!")
	}
	return bookID, nil
}

// coerce turns a query-string number into an int, falling back to the
// default on anything empty, unparsable or negative.
func coerce(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
