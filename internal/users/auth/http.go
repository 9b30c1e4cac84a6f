// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoklosowski/madr/internal/platform/respond"
	"github.com/eduardoklosowski/madr/internal/platform/validate"
)

// maxFormBytes bounds the urlencoded login body.
const maxFormBytes = 64 << 10

// # Definitions & Constructors

// Handler implements the token endpoint.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts POST / on router, which is expected at /token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.issueToken)
}

/*
issueToken exchanges credentials for a bearer token.

POST /token

Request:
  - Body (application/x-www-form-urlencoded): username (email or username), password

Response:
  - 200: Token
  - 400: Email ou senha incorretos
  - 422: Missing form field
  - 429: Too many failed attempts for this identifier
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, validate.FieldErr(validate.LocBody, FieldUsername, validate.MsgRequired))
		return
	}

	input := LoginInput{
		Identifier: request.PostForm.Get(FieldUsername),
		Password:   request.PostForm.Get(FieldPassword),
	}

	validator := &validate.Validator{}
	validator.Custom(FieldUsername, input.Identifier == "", validate.MsgRequired).
		Custom(FieldPassword, input.Password == "", validate.MsgRequired)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token)
}
