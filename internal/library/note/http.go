// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/middleware"
	requestutil "github.com/taibuivan/readlog/internal/platform/request"
	"github.com/taibuivan/readlog/internal/platform/respond"
)

// Handler implements the HTTP layer for notes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new note [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the note endpoints. All of them require authentication.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(reader chi.Router) {
		reader.Use(middleware.RequireAuth)

		reader.Get("/books/{bookID}/notes", handler.list)
		reader.Post("/books/{bookID}/notes", handler.create)
		reader.Patch("/notes/{noteID}", handler.update)
		reader.Delete("/notes/{noteID}", handler.delete)
	})
}

/*
GET /api/v1/books/{bookID}/notes.

Response:
  - 200: []Note: Caller's notes, page order
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notes, err := handler.service.List(request.Context(), requestutil.Param(request, "bookID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if notes == nil {
		notes = []*Note{}
	}
	respond.OK(writer, notes)
}

/*
POST /api/v1/books/{bookID}/notes.

Request:
  - body: CreateInput

Response:
  - 201: Note
  - 400: ErrValidation: Empty content or page outside the book
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.Create(request.Context(), requestutil.Param(request, "bookID"), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, note)
}

/*
PATCH /api/v1/notes/{noteID}.

Request:
  - body: UpdateInput (fields optional)

Response:
  - 200: Note
  - 404: ErrNotFound: Unknown note or owned by another reader
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	note, err := handler.service.Update(request.Context(), requestutil.Param(request, "noteID"), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, note)
}

// DELETE /api/v1/notes/{noteID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "noteID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
