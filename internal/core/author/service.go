package author

import (
	"context"
	"log/slog"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/internal/platform/validate"
	"github.com/eduardoklosowski/madr/pkg/pagination"
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

func (service *Service) ListAuthors(ctx context.Context, filter Filter, page pagination.Params) ([]*Author, error) {
	authors, err := service.repo.ListAuthors(ctx, filter, page)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return authors, nil
}

func (service *Service) GetAuthor(ctx context.Context, id int) (*Author, error) {
	author, err := service.repo.GetAuthor(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return author, nil
}

func (service *Service) CreateAuthor(ctx context.Context, input Input) (*Author, error) {
	name, err := cleanName(input)
	if err != nil {
		return nil, err
	}

	author := &Author{Name: name}
	if err := service.repo.CreateAuthor(ctx, author); err != nil {
		return nil, translate(err)
	}

	service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("name", author.Name))
	return author, nil
}

func (service *Service) UpdateAuthor(ctx context.Context, id int, input Input) (*Author, error) {
	name, err := cleanName(input)
	if err != nil {
		return nil, err
	}

	author := &Author{ID: id, Name: name}
	if err := service.repo.UpdateAuthor(ctx, author); err != nil {
		return nil, translate(err)
	}

	service.logger.Info("author_updated", slog.Int("author_id", author.ID))
	return author, nil
}

func (service *Service) DeleteAuthor(ctx context.Context, id int) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return translate(err)
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id))
	return nil
}

// cleanName validates the input and returns the sanitized name.
func cleanName(input Input) (string, error) {
	if err := validate.Struct(input); err != nil {
		return "", err
	}

	name := sanitize.Text(input.Name)
	if err := (&validate.Validator{}).NotEmpty(FieldName, name).Err(); err != nil {
		return "", err
	}
	return name, nil
}

// translate maps storage failures to the errors reported for authors.
func translate(err error) error {
	switch dberr.KindOf(err) {
	case dberr.KindNotFound:
		return apperr.NotFound(Resource)
	case dberr.KindUnique:
		return apperr.Conflict(Resource)
	default:
		return apperr.Internal(err)
	}
}
