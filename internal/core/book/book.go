package book

import (
	"time"

	"github.com/eduardoklosowski/madr/pkg/optional"
)

// Resource is the name used in user-facing messages about books.
const Resource = "Livro"

// Book is a novel ("livro") written by exactly one author.
//
// Title is always stored in its sanitized form and is unique.
type Book struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Year         int       `json:"year"`
	RomancistaID int       `json:"romancista_id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// CreateInput is the body accepted by create.
type CreateInput struct {
	Title        string `json:"title" validate:"required"`
	Year         *int   `json:"year" validate:"required,gt=0"`
	RomancistaID *int   `json:"romancista_id" validate:"required"`
}

// PatchInput is the body accepted by a partial update. Absent fields are left untouched.
type PatchInput struct {
	Title        optional.Value[string] `json:"title"`
	Year         optional.Value[int]    `json:"year"`
	RomancistaID optional.Value[int]    `json:"romancista_id"`
}

// Changes is a validated patch: nil fields keep their stored value.
type Changes struct {
	Title        *string
	Year         *int
	RomancistaID *int
}

// Filter holds the parameters for a book search. Both filters combine with AND.
type Filter struct {
	// Title is matched as a case-insensitive substring of the stored title.
	Title string
	// Year, when set, must match exactly.
	Year *int
}

// ListResponse is the body returned by the list endpoint.
type ListResponse struct {
	Livros []*Book `json:"livros"`
}

// Global field names for validation
const (
	FieldTitle        = "title"
	FieldYear         = "year"
	FieldRomancistaID = "romancista_id"
)
