// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Repositories wrap every driver error with [Wrap]; services look only at the
// resulting [Kind] and translate it into a domain error for their resource.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a storage failure.
type Kind int

const (
	// KindOther is any failure the application cannot act on.
	KindOther Kind = iota
	// KindNotFound means the targeted row does not exist.
	KindNotFound
	// KindUnique means a unique constraint rejected the write.
	KindUnique
	// KindForeignKey means a foreign key constraint rejected the write.
	KindForeignKey
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnique:
		return "unique_violation"
	case KindForeignKey:
		return "foreign_key_violation"
	default:
		return "other"
	}
}

// Error is a classified storage error.
type Error struct {
	Kind       Kind
	Constraint string
	Op         string
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap classifies err and annotates it with the failing operation.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}

	// Already classified by a lower layer.
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &Error{Kind: KindNotFound, Op: op, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return &Error{Kind: KindUnique, Constraint: pgErr.ConstraintName, Op: op, Err: err}
		case pgerrcode.ForeignKeyViolation:
			return &Error{Kind: KindForeignKey, Constraint: pgErr.ConstraintName, Op: op, Err: err}
		}
	}

	return &Error{Kind: KindOther, Op: op, Err: err}
}

// NotFound builds a [KindNotFound] error for statements that affected no rows.
func NotFound(op string) error {
	return &Error{Kind: KindNotFound, Op: op}
}

// Unique builds a [KindUnique] error. Used by in-memory stores.
func Unique(op, constraint string) error {
	return &Error{Kind: KindUnique, Constraint: constraint, Op: op}
}

// ForeignKey builds a [KindForeignKey] error. Used by in-memory stores.
func ForeignKey(op, constraint string) error {
	return &Error{Kind: KindForeignKey, Constraint: constraint, Op: op}
}

// KindOf returns the classification of err, or [KindOther] if err is not classified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindOther
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
