package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-api/internal/domains/book"
)

// stubCache is a cache.Cache that always misses and records invalidations.
type stubCache struct {
	sets    int
	deletes []string
}

func (s *stubCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	return nil
}

func (s *stubCache) Delete(ctx context.Context, keys ...string) error {
	s.deletes = append(s.deletes, keys...)
	return nil
}

func (s *stubCache) Ping(ctx context.Context) error { return nil }

var bookColumns = []string{
	"id", "title", "author_id", "description", "pages", "isbn",
	"published_year", "created_at", "updated_at",
	"author_join_id", "author_name",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *stubCache, book.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	c := &stubCache{}
	return mock, c, NewPostgresRepository(mock, c)
}

func TestListSkipsPageTimesLimit(t *testing.T) {
	mock, _, repo := newMock(t)

	bookID, authorID := uuid.New(), uuid.New()
	now := time.Now()

	// page=1, limit=10 must skip 10 records and take 10.
	mock.ExpectQuery(`SELECT (.+) FROM books b\s+LEFT JOIN authors a ON a\.id = b\.author_id`).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows(bookColumns).
			AddRow(bookID, "Title", authorID, "Desc", 100, "isbn-1", now, now, now, &authorID, strPtr("Jane")))

	books, err := repo.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, bookID, books[0].ID)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Jane", books[0].Author.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListKeepsBookWithDanglingAuthor(t *testing.T) {
	mock, _, repo := newMock(t)

	bookID, authorID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM books b`).
		WithArgs(0, 4).
		WillReturnRows(pgxmock.NewRows(bookColumns).
			AddRow(bookID, "Orphan", authorID, "", 0, "", now, now, now, nil, nil))

	books, err := repo.List(context.Background(), 0, 4)
	require.NoError(t, err)
	require.Len(t, books, 1)
	// The unmatched join leaves the author absent, not the book dropped.
	assert.Nil(t, books[0].Author)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAbsentIsNil(t *testing.T) {
	mock, _, repo := newMock(t)

	id := uuid.New()
	mock.ExpectQuery(`FROM books b`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDCachesHit(t *testing.T) {
	mock, c, repo := newMock(t)

	bookID, authorID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM books b`).
		WithArgs(bookID).
		WillReturnRows(pgxmock.NewRows(bookColumns).
			AddRow(bookID, "Title", authorID, "", 0, "", now, now, now, nil, nil))

	b, err := repo.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 1, c.sets)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAbsentIDIsNoError(t *testing.T) {
	mock, c, repo := newMock(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM books WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, c.deletes, "book:"+id.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsAssignedID(t *testing.T) {
	mock, _, repo := newMock(t)

	assigned := uuid.New()
	b := &book.Book{
		Title:         "Title",
		AuthorID:      uuid.New(),
		PublishedYear: time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO books`).
		WithArgs(b.Title, b.AuthorID, b.Description, b.Pages, b.ISBN,
			b.PublishedYear, b.CreatedAt, b.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(assigned))

	id, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, assigned, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInvalidatesCache(t *testing.T) {
	mock, c, repo := newMock(t)

	b := &book.Book{
		ID:            uuid.New(),
		Title:         "Title",
		AuthorID:      uuid.New(),
		PublishedYear: time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	mock.ExpectExec(`UPDATE books SET`).
		WithArgs(b.Title, b.AuthorID, b.Description, b.Pages, b.ISBN,
			b.PublishedYear, b.CreatedAt, b.UpdatedAt, b.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), b)
	require.NoError(t, err)
	assert.Contains(t, c.deletes, "book:"+b.ID.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
