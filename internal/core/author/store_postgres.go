package author

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduardoklosowski/madr/internal/platform/database/schema"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
	"github.com/eduardoklosowski/madr/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.Romancistas.Columns(), ", ")

func (repository *PostgresRepository) ListAuthors(ctx context.Context, filter Filter, page pagination.Params) ([]*Author, error) {
	// An empty filter matches every row: strpos(x, '') = 1.
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE strpos(lower(%s), lower($1)) > 0
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		selectColumns, schema.Romancistas.Table,
		schema.Romancistas.Name, schema.Romancistas.ID,
	)

	rows, err := repository.db.Query(ctx, query, filter.Name, page.Limit, page.Offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(ctx context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Romancistas.Table, schema.Romancistas.ID,
	)

	a := &Author{}
	err := repository.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}
	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(ctx context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1)
		RETURNING %s, %s, %s
	`,
		schema.Romancistas.Table, schema.Romancistas.Name,
		schema.Romancistas.ID, schema.Romancistas.CreatedAt, schema.Romancistas.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.Name).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(ctx context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.Romancistas.Table, schema.Romancistas.Name, schema.Romancistas.UpdatedAt,
		schema.Romancistas.ID,
		schema.Romancistas.CreatedAt, schema.Romancistas.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, a.ID, a.Name).Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}

// DeleteAuthor removes the author; its books go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) DeleteAuthor(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Romancistas.Table, schema.Romancistas.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.NotFound("delete_author")
	}
	return nil
}
