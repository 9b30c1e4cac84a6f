package book

import (
	"context"
	"log/slog"

	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/internal/platform/validate"
	"github.com/eduardoklosowski/madr/pkg/pagination"
	"github.com/eduardoklosowski/madr/pkg/pointer"
	"github.com/eduardoklosowski/madr/pkg/sanitize"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(ctx context.Context, filter Filter, page pagination.Params) ([]*Book, error) {
	books, err := service.repo.ListBooks(ctx, filter, page)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return books, nil
}

func (service *Service) GetBook(ctx context.Context, id int) (*Book, error) {
	book, err := service.repo.GetBook(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return book, nil
}

func (service *Service) CreateBook(ctx context.Context, input CreateInput) (*Book, error) {

	// ── 1. Validation ──
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	title := sanitize.Text(input.Title)
	if err := (&validate.Validator{}).NotEmpty(FieldTitle, title).Err(); err != nil {
		return nil, err
	}

	// ── 2. Author must exist before the insert ──
	authorID := pointer.Val(input.RomancistaID)
	if err := service.requireAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	// ── 3. Persistence ──
	book := &Book{Title: title, Year: pointer.Val(input.Year), RomancistaID: authorID}
	if err := service.repo.CreateBook(ctx, book); err != nil {
		return nil, translate(err)
	}

	service.logger.Info("book_created",
		slog.Int("book_id", book.ID),
		slog.Int("romancista_id", book.RomancistaID),
	)
	return book, nil
}

// PatchBook applies the fields present in input. An empty patch returns the stored book unchanged.
func (service *Service) PatchBook(ctx context.Context, id int, input PatchInput) (*Book, error) {

	// ── 1. Validation ──
	changes, err := validatePatch(input)
	if err != nil {
		return nil, err
	}

	// ── 2. A new author must exist; a missing book is reported first ──
	if changes.RomancistaID != nil {
		if _, err := service.repo.GetBook(ctx, id); err != nil {
			return nil, translate(err)
		}
		if err := service.requireAuthor(ctx, *changes.RomancistaID); err != nil {
			return nil, err
		}
	}

	// ── 3. Persistence (single UPDATE; FK races still surface as NotFound) ──
	book, err := service.repo.PatchBook(ctx, id, changes)
	if err != nil {
		return nil, translate(err)
	}

	service.logger.Info("book_updated", slog.Int("book_id", book.ID))
	return book, nil
}

func (service *Service) DeleteBook(ctx context.Context, id int) error {
	if err := service.repo.DeleteBook(ctx, id); err != nil {
		return translate(err)
	}

	service.logger.Warn("book_deleted", slog.Int("book_id", id))
	return nil
}

func (service *Service) requireAuthor(ctx context.Context, authorID int) error {
	exists, err := service.repo.AuthorExists(ctx, authorID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !exists {
		return apperr.NotFound(author.Resource)
	}
	return nil
}

func validatePatch(input PatchInput) (Changes, error) {
	validator := &validate.Validator{}
	var changes Changes

	validator.Custom(FieldTitle, input.Title.IsNull(), validate.MsgNotNullable)
	validator.Custom(FieldYear, input.Year.IsNull(), validate.MsgNotNullable)
	validator.Custom(FieldRomancistaID, input.RomancistaID.IsNull(), validate.MsgNotNullable)

	if title, ok := input.Title.Get(); ok {
		title = sanitize.Text(title)
		validator.NotEmpty(FieldTitle, title)
		changes.Title = &title
	}

	if year, ok := input.Year.Get(); ok {
		validator.Positive(FieldYear, year)
		changes.Year = &year
	}

	changes.RomancistaID = input.RomancistaID.Ptr()

	return changes, validator.Err()
}

// translate maps storage failures to the errors reported for books.
func translate(err error) error {
	switch dberr.KindOf(err) {
	case dberr.KindNotFound:
		return apperr.NotFound(Resource)
	case dberr.KindUnique:
		return apperr.Conflict(Resource)
	case dberr.KindForeignKey:
		return apperr.NotFound(author.Resource)
	default:
		return apperr.Internal(err)
	}
}
