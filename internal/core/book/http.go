// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/middleware"
	requestutil "github.com/taibuivan/readlog/internal/platform/request"
	"github.com/taibuivan/readlog/internal/platform/respond"
)

// Handler implements the HTTP layer for books and search.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the /books endpoints. They share the /books/{bookID}
// prefix with the library handlers, so they are registered flat on the API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/books/search", handler.search)
	api.Get("/books/{bookID}", handler.get)

	api.With(middleware.RequireAuth).Post("/books", handler.create)
}

// createRequest is either an import ({external_id}) or a manual entry.
type createRequest struct {
	ExternalID string `json:"external_id"`
	CreateInput
}

/*
GET /api/v1/books/search?q=&limit=.

Description: Searches the local catalogue and the external catalog. Local hits
come first; external hits already imported are omitted.

Request:
  - q: string (title, author or ISBN)
  - limit: int (per origin, default 20, max 40)

Response:
  - 200: SearchResult: external_error is true when only local hits could be returned
  - 400: ErrValidation: Empty or oversized query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	limit := requestutil.QueryInt(request, "limit", DefaultSearchLimit)

	result, err := handler.service.Search(request.Context(), query, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/books/{bookID}.

Description: Returns one book with its community rating aggregate.

Response:
  - 200: Details
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	details, err := handler.service.Get(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, details)
}

/*
POST /api/v1/books.

Description: Imports a volume from the external catalog when external_id is
present; otherwise creates a manual book from the remaining fields.

Request:
  - body: createRequest

Response:
  - 201: Book
  - 400: ErrValidation: Missing title, bad ISBN, negative page count
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown external volume
  - 502: ErrUpstream: External catalog unavailable
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var (
		book *Book
		err  error
	)
	if input.ExternalID != "" {
		book, err = handler.service.Import(request.Context(), input.ExternalID)
	} else {
		book, err = handler.service.Create(request.Context(), input.CreateInput)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}
