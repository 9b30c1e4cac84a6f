// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/eduardoklosowski/madr/internal/platform/request"
	"github.com/eduardoklosowski/madr/internal/platform/respond"
	"github.com/eduardoklosowski/madr/internal/users/auth"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the account endpoints. Registration is public.
func (handler *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Post("/", handler.register)

	// Owner only
	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)

		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})
}

// POST /conta
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

// PUT /conta/{id}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), caller, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// DELETE /conta/{id}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), caller, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer, auth.Resource+" deletada no MADR")
}
