// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Lists are windowed with `offset` and `limit` query parameters. Unlike a
// clamping parser, out-of-range values are rejected so the client learns
// about them.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items returned if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per request.
	MaxLimit = 100
	// DefaultOffset skips nothing.
	DefaultOffset = 0
)

// Params holds the parsed offset and limit from a request's query string.
type Params struct {
	Offset int
	Limit  int
}

// Default returns the parameters used when the query string sets neither value.
func Default() Params {
	return Params{Offset: DefaultOffset, Limit: DefaultLimit}
}

// ParamError describes a rejected query parameter.
type ParamError struct {
	Param string
	Msg   string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("pagination: %s: %s", e.Param, e.Msg)
}

// FromRequest parses "offset" and "limit" query parameters from an HTTP request.
//
// It returns every rejected parameter, in query order (offset first).
func FromRequest(r *http.Request) (Params, []*ParamError) {
	var errs []*ParamError

	offset, err := parseIntParam(r, "offset", DefaultOffset)
	if err != nil {
		errs = append(errs, err)
	} else if offset < 0 {
		errs = append(errs, &ParamError{Param: "offset", Msg: "Deve ser maior ou igual a 0"})
	}

	limit, err := parseIntParam(r, "limit", DefaultLimit)
	if err != nil {
		errs = append(errs, err)
	} else if limit < 0 || limit > MaxLimit {
		errs = append(errs, &ParamError{Param: "limit", Msg: fmt.Sprintf("Deve estar entre 0 e %d", MaxLimit)})
	}

	return Params{Offset: offset, Limit: limit}, errs
}

// Window returns the part of items selected by the parameters.
//
// Used by in-memory stores; SQL stores use LIMIT/OFFSET directly.
func Window[T any](items []T, params Params) []T {
	if params.Offset >= len(items) || params.Limit == 0 {
		return []T{}
	}
	end := params.Offset + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[params.Offset:end]
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, *ParamError) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParamError{Param: key, Msg: "Deve ser um número inteiro"}
	}

	return n, nil
}
