// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Presence and format rules are declared as `validate` struct tags on request
// types and checked with [Struct] (go-playground/validator). Rules that depend
// on computed values, such as a name that is empty once sanitized, go through
// the chainable [Validator].
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
)

// Locations of an invalid value, used as the first element of [apperr.FieldError.Loc].
const (
	LocBody  = "body"
	LocPath  = "path"
	LocQuery = "query"
)

// Messages shared by tag-driven and chained rules.
const (
	MsgRequired    = "Campo obrigatório"
	MsgEmail       = "Email inválido"
	MsgPositive    = "Deve ser maior que 0"
	MsgEmptyAfter  = "Não deve estar em branco"
	MsgInteger     = "Deve ser um número inteiro"
	MsgInvalidJSON = "JSON inválido"
	MsgNotNullable = "Não pode ser nulo"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared go-playground validator.
//
// Field names in reported errors come from `json` tags, falling back to `form`
// tags, so they match what the client sent.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})
	})
	return engine
}

// Struct checks the `validate` tags of target and reports failures located in the body.
func Struct(target any) error {
	err := Engine().Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	v := &Validator{}
	for _, fieldError := range fieldErrors {
		v.add(Loc(LocBody, fieldError.Field()), messageFor(fieldError))
	}
	return v.Err()
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmail
	case "gt", "min":
		if fieldError.Param() == "0" {
			return MsgPositive
		}
		return fmt.Sprintf("Deve ser maior que %s", fieldError.Param())
	case "max":
		return fmt.Sprintf("Deve ser no máximo %s", fieldError.Param())
	default:
		return fmt.Sprintf("Falhou na regra %q", fieldError.Tag())
	}
}

// Loc builds an error location such as ["body", "title"].
func Loc(source string, path ...string) []string {
	return append([]string{source}, path...)
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// The zero value reports body fields. Validator is not safe for concurrent use.
type Validator struct {
	Source string
	errs   []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(v.loc(field), MsgRequired)
	}
	return v
}

// NotEmpty fails if the value is empty. Used on sanitized text.
func (v *Validator) NotEmpty(field, value string) *Validator {
	if value == "" {
		v.add(v.loc(field), MsgEmptyAfter)
	}
	return v
}

// Email fails if the value is not a valid email address.
func (v *Validator) Email(field, value string) *Validator {
	if Engine().Var(value, "required,email") != nil {
		v.add(v.loc(field), MsgEmail)
	}
	return v
}

// Positive fails if value is not strictly greater than zero.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.add(v.loc(field), MsgPositive)
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(v.loc(field), fmt.Sprintf("Deve estar entre %d e %d", min, max))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
//	v.Custom("year", year <= 0, validate.MsgPositive)
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(v.loc(field), message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.Validation(v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) loc(field string) []string {
	source := v.Source
	if source == "" {
		source = LocBody
	}
	return Loc(source, field)
}

func (v *Validator) add(loc []string, message string) {
	v.errs = append(v.errs, apperr.FieldError{Loc: loc, Msg: message})
}

// FieldErr is a shortcut to create a single-field validation error.
func FieldErr(source, field, message string) *apperr.AppError {
	return apperr.Validation(apperr.FieldError{Loc: Loc(source, field), Msg: message})
}
