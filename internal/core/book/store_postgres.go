package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
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

var selectColumns = strings.Join(schema.Livros.Columns(), ", ")

func scanBook(row pgx.Row) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Year, &b.RomancistaID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (repository *PostgresRepository) ListBooks(ctx context.Context, filter Filter, page pagination.Params) ([]*Book, error) {
	// A NULL year parameter disables the year filter.
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE strpos(lower(%s), lower($1)) > 0
		  AND ($2::bigint IS NULL OR %s = $2)
		ORDER BY %s ASC
		LIMIT $3 OFFSET $4
	`,
		selectColumns, schema.Livros.Table,
		schema.Livros.Title, schema.Livros.Year, schema.Livros.ID,
	)

	rows, err := repository.db.Query(ctx, query, filter.Title, filter.Year, page.Limit, page.Offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, dberr.Wrap(rows.Err(), "list_books")
}

func (repository *PostgresRepository) GetBook(ctx context.Context, id int) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.Livros.Table, schema.Livros.ID,
	)

	b, err := scanBook(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBook(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s
	`,
		schema.Livros.Table, schema.Livros.Title, schema.Livros.Year, schema.Livros.RomancistaID,
		schema.Livros.ID, schema.Livros.CreatedAt, schema.Livros.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, b.Title, b.Year, b.RomancistaID).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) PatchBook(ctx context.Context, id int, changes Changes) (*Book, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = COALESCE($2, %s),
		    %s = COALESCE($3, %s),
		    %s = COALESCE($4, %s),
		    %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.Livros.Table,
		schema.Livros.Title, schema.Livros.Title,
		schema.Livros.Year, schema.Livros.Year,
		schema.Livros.RomancistaID, schema.Livros.RomancistaID,
		schema.Livros.UpdatedAt,
		schema.Livros.ID,
		selectColumns,
	)

	b, err := scanBook(repository.db.QueryRow(ctx, query, id, changes.Title, changes.Year, changes.RomancistaID))
	if err != nil {
		return nil, dberr.Wrap(err, "patch_book")
	}
	return b, nil
}

func (repository *PostgresRepository) DeleteBook(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Livros.Table, schema.Livros.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.NotFound("delete_book")
	}
	return nil
}

func (repository *PostgresRepository) AuthorExists(ctx context.Context, authorID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Romancistas.Table, schema.Romancistas.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, authorID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "author_exists")
	}
	return exists, nil
}
