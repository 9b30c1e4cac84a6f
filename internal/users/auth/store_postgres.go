// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduardoklosowski/madr/internal/platform/database/schema"
	"github.com/eduardoklosowski/madr/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.Users.Columns(), ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, op, where string, args ...any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, userColumns, schema.Users.Table, where)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}
	return user, nil
}

// FindByID retrieves an account by its primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	return repository.findOne(ctx, "find_user_by_id", schema.Users.ID+" = $1", id)
}

// FindByEmail retrieves an account by its unique email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, "find_user_by_email", schema.Users.Email+" = $1", email)
}

/*
FindByLogin retrieves an account by email or username.

Description: Email and username live in separate unique indexes, and a value
can only match one of them on two different rows if someone registered an
email-shaped username; the row with the matching email wins.
*/
func (repository *PostgresUserRepository) FindByLogin(ctx context.Context, identifier string) (*User, error) {
	where := fmt.Sprintf(`%s = $1 OR %s = $1 ORDER BY (%s = $1) DESC LIMIT 1`,
		schema.Users.Email, schema.Users.Username, schema.Users.Email,
	)
	return repository.findOne(ctx, "find_user_by_login", where, identifier)
}

// Create inserts a new account.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s
	`,
		schema.Users.Table, schema.Users.Email, schema.Users.Username, schema.Users.Password,
		schema.Users.ID, schema.Users.CreatedAt, schema.Users.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, user.Email, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

// Update rewrites every mutable column of the account.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.Users.Table,
		schema.Users.Email, schema.Users.Username, schema.Users.Password, schema.Users.UpdatedAt,
		schema.Users.ID,
		schema.Users.CreatedAt, schema.Users.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

// Delete removes the account.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.ID)

	cmd, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.NotFound("delete_user")
	}
	return nil
}
