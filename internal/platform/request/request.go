// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, so every malformed input becomes the same 422 shape.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoklosowski/madr/internal/platform/apperr"
	"github.com/eduardoklosowski/madr/internal/platform/ctxutil"
	"github.com/eduardoklosowski/madr/internal/platform/sec"
	"github.com/eduardoklosowski/madr/internal/platform/validate"
	"github.com/eduardoklosowski/madr/pkg/pagination"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

A body that is not a JSON object of the expected shape yields a 422 located
at ["body"], or at ["body", field] when the decoder names the field.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	err := json.NewDecoder(request.Body).Decode(target)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validate.FieldErr(validate.LocBody, typeErr.Field, "Tipo inválido")
	}

	if errors.Is(err, io.EOF) {
		return apperr.Validation(apperr.FieldError{Loc: []string{validate.LocBody}, Msg: validate.MsgRequired})
	}

	return apperr.Validation(apperr.FieldError{Loc: []string{validate.LocBody}, Msg: validate.MsgInvalidJSON})
}

/*
IntID retrieves a named integer URL parameter.

Non-integer values yield a 422 located at ["path", name].
*/
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.FieldErr(validate.LocPath, name, validate.MsgInteger)
	}

	return id, nil
}

/*
Page parses offset/limit query parameters, rejecting invalid values with a 422.
*/
func Page(request *http.Request) (pagination.Params, error) {
	params, paramErrs := pagination.FromRequest(request)
	if len(paramErrs) == 0 {
		return params, nil
	}

	details := make([]apperr.FieldError, 0, len(paramErrs))
	for _, paramErr := range paramErrs {
		details = append(details, apperr.FieldError{
			Loc: validate.Loc(validate.LocQuery, paramErr.Param),
			Msg: paramErr.Msg,
		})
	}
	return pagination.Params{}, apperr.Validation(details...)
}

/*
QueryInt parses an optional integer query parameter. Absent values return nil.
*/
func QueryInt(request *http.Request, name string) (*int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validate.FieldErr(validate.LocQuery, name, validate.MsgInteger)
	}

	return &value, nil
}

/*
Principal extracts the authenticated caller from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the caller.

Routes mounted behind RequireAuth never see the error branch.
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized()
	}
	return principal, nil
}
