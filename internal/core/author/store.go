package author

import (
	"context"

	"github.com/eduardoklosowski/madr/pkg/pagination"
)

// Repository persists authors. Errors are classified with dberr.
type Repository interface {
	ListAuthors(ctx context.Context, filter Filter, page pagination.Params) ([]*Author, error)
	GetAuthor(ctx context.Context, id int) (*Author, error)
	CreateAuthor(ctx context.Context, author *Author) error
	UpdateAuthor(ctx context.Context, author *Author) error
	DeleteAuthor(ctx context.Context, id int) error
}
