package book

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Author is the joined read model for an author record. Authors are owned
// by an external collaborator; this service never writes them.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Book is a book record together with its joined author. A dangling
// author reference leaves Author nil; the book itself is never dropped.
type Book struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	AuthorID      uuid.UUID `json:"authorId" db:"author_id"`
	Description   string    `json:"description" db:"description"`
	Pages         int       `json:"pages" db:"pages"`
	ISBN          string    `json:"ISBN" db:"isbn"`
	PublishedYear time.Time `json:"publishedYear" db:"published_year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Author *Author `json:"author,omitempty"`
}

// Payload is the inbound shape for create and update. Identifier and date
// fields arrive as strings and are coerced by the service; coercion
// failures must never reach storage.
type Payload struct {
	Title         string `json:"title"`
	AuthorID      string `json:"authorId"`
	Description   string `json:"description"`
	Pages         int    `json:"pages"`
	ISBN          string `json:"ISBN"`
	PublishedYear string `json:"publishedYear"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// Validate checks the payload before any coercion happens.
func (p Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.AuthorID, validation.Required, is.UUID),
		validation.Field(&p.Pages, validation.Min(0)),
		validation.Field(&p.PublishedYear, validation.Required, validation.By(dateRule)),
		validation.Field(&p.CreatedAt, validation.By(dateRule)),
		validation.Field(&p.UpdatedAt, validation.By(dateRule)),
	)
}

// dateLayouts are the accepted date encodings, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate coerces a payload date string into a timestamp.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be a valid date")
}

func dateRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseDate(s)
	return err
}
