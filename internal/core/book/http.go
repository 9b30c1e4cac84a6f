package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/eduardoklosowski/madr/internal/platform/request"
	"github.com/eduardoklosowski/madr/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the book endpoints. Writes go through requireAuth.
func (handler *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)

	// Any authenticated account
	router.Group(func(protected chi.Router) {
		protected.Use(requireAuth)

		protected.Post("/", handler.createBook)
		protected.Patch("/{id}", handler.patchBook)
		protected.Delete("/{id}", handler.deleteBook)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	page, err := requestutil.Page(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := requestutil.QueryInt(request, "year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Title: request.URL.Query().Get("title"),
		Year:  year,
	}

	books, err := handler.service.ListBooks(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ListResponse{Livros: books})
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateBook(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) patchBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PatchInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.PatchBook(request.Context(), bookID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer, Resource+" deletado no MADR")
}
