package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/domains/book"
	"bookshelf-api/pkg/cache"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const bookCacheTTL = 5 * time.Minute

type postgresRepository struct {
	db    DB
	cache cache.Cache
}

func NewPostgresRepository(db DB, cache cache.Cache) book.Repository {
	return &postgresRepository{
		db:    db,
		cache: cache,
	}
}

// joinedColumns is the select list shared by every read. The author side
// of the join is nullable.
const joinedColumns = `
	b.id, b.title, b.author_id, b.description, b.pages, b.isbn,
	b.published_year, b.created_at, b.updated_at,
	a.id, a.name
`

func (r *postgresRepository) List(ctx context.Context, page, limit int) ([]book.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		ORDER BY b.created_at, b.id
		OFFSET $1 LIMIT $2
	`, joinedColumns)

	rows, err := r.db.Query(ctx, query, page*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0, limit)
	for rows.Next() {
		b, err := scanJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books rows: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	cacheKey := bookCacheKey(id)

	var cached book.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err != nil {
		// A broken cache must not take reads down with it.
		log.Warn().Err(err).Str("key", cacheKey).Msg("book cache read failed")
	} else if found {
		return &cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1
	`, joinedColumns)

	b, err := scanJoined(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, bookCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("book cache write failed")
	}

	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (uuid.UUID, error) {
	query := `
		INSERT INTO books (
			title, author_id, description, pages, isbn,
			published_year, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		b.Title,
		b.AuthorID,
		b.Description,
		b.Pages,
		b.ISBN,
		b.PublishedYear,
		b.CreatedAt,
		b.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create book: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books SET
			title = $1, author_id = $2, description = $3, pages = $4,
			isbn = $5, published_year = $6, created_at = $7, updated_at = $8
		WHERE id = $9
	`

	_, err := r.db.Exec(ctx, query,
		b.Title,
		b.AuthorID,
		b.Description,
		b.Pages,
		b.ISBN,
		b.PublishedYear,
		b.CreatedAt,
		b.UpdatedAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	r.invalidate(ctx, b.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Unconditional delete; zero affected rows is still success.
	_, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("book cache invalidation failed")
	}
}

func bookCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("book:%s", id)
}

// scanJoined scans one book row with its left-joined author columns.
func scanJoined(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var authorID *uuid.UUID
	var authorName *string

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Description,
		&b.Pages,
		&b.ISBN,
		&b.PublishedYear,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorID,
		&authorName,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		b.Author = &book.Author{ID: *authorID}
		if authorName != nil {
			b.Author.Name = *authorName
		}
	}

	return &b, nil
}
