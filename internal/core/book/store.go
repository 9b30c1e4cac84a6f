package book

import (
	"context"

	"github.com/eduardoklosowski/madr/pkg/pagination"
)

// Repository persists books. Errors are classified with dberr.
type Repository interface {
	ListBooks(ctx context.Context, filter Filter, page pagination.Params) ([]*Book, error)
	GetBook(ctx context.Context, id int) (*Book, error)
	CreateBook(ctx context.Context, book *Book) error
	// PatchBook applies the non-nil changes in one statement and returns the stored row.
	PatchBook(ctx context.Context, id int, changes Changes) (*Book, error)
	DeleteBook(ctx context.Context, id int) error
	// AuthorExists reports whether an author with the given id is stored.
	AuthorExists(ctx context.Context, authorID int) (bool, error)
}
