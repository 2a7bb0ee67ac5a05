// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/middleware"
	requestutil "github.com/taibuivan/readlog/internal/platform/request"
	"github.com/taibuivan/readlog/internal/platform/respond"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/pagination"
)

// dateLayout renders started_at / finished_at as calendar dates.
const dateLayout = time.DateOnly

// Handler implements the HTTP layer for reading status and the library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the endpoints, which span the /books/{bookID}/... and
// /library prefixes, to the versioned API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/books/{bookID}/ratings", handler.ratings)

	api.Group(func(reader chi.Router) {
		reader.Use(middleware.RequireAuth)

		reader.Post("/books/{bookID}/status", handler.updateStatus)
		reader.Get("/books/{bookID}/status", handler.getStatus)
		reader.Get("/library", handler.listLibrary)
		reader.Delete("/library/{bookID}", handler.removeFromLibrary)
	})
}

// # Payloads

type statusRequest struct {
	Status      *string `json:"status"`
	CurrentPage *int    `json:"current_page"`
	Rating      *int    `json:"rating"`
	ReviewText  *string `json:"review_text"`
}

type statusResponse struct {
	BookID          string   `json:"book_id"`
	Status          Status   `json:"status"`
	CurrentPage     int      `json:"current_page"`
	TotalPages      *int     `json:"total_pages"`
	ProgressPercent int      `json:"progress_percent"`
	Rating          *int     `json:"rating"`
	ReviewText      *string  `json:"review_text"`
	StartedAt       *string  `json:"started_at"`
	FinishedAt      *string  `json:"finished_at"`
	UpdatedAt       string   `json:"updated_at"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
	RatingCount     *int     `json:"rating_count,omitempty"`
}

type libraryEntryResponse struct {
	statusResponse
	Book BookSummary `json:"book"`
}

func newStatusResponse(result *Result) statusResponse {
	record := result.Record
	response := statusResponse{
		BookID:          record.BookID,
		Status:          record.Status,
		CurrentPage:     record.CurrentPage,
		TotalPages:      result.TotalPages,
		ProgressPercent: result.ProgressPercent,
		Rating:          record.Rating,
		ReviewText:      record.ReviewText,
		StartedAt:       formatDate(record.StartedAt),
		FinishedAt:      formatDate(record.FinishedAt),
		UpdatedAt:       record.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if result.Aggregate != nil {
		average, count := result.Aggregate.AverageRating, result.Aggregate.RatingCount
		response.AverageRating = &average
		response.RatingCount = &count
	}
	return response
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}
	formatted := date.UTC().Format(dateLayout)
	return &formatted
}

/*
POST /api/v1/books/{bookID}/status.

Description: Moves the book on the caller's shelves, records page progress and
optionally rates or reviews it. Unknown status strings keep the current status.

Request:
  - bookID: string (UUID)
  - body: statusRequest (every field optional)

Response:
  - 200: statusResponse: Persisted record with average_rating and rating_count
  - 400: ErrValidation: rating outside 1..5 or malformed JSON
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input statusRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.UpdateStatus(request.Context(), requestutil.Param(request, "bookID"), userID, StatusUpdate{
		Status:      input.Status,
		CurrentPage: input.CurrentPage,
		Rating:      input.Rating,
		ReviewText:  input.ReviewText,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newStatusResponse(result))
}

/*
GET /api/v1/books/{bookID}/status.

Response:
  - 200: statusResponse: Caller's record (no aggregate)
  - 404: ErrNotFound: Unknown book or book not in the library
*/
func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetStatus(request.Context(), requestutil.Param(request, "bookID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newStatusResponse(result))
}

/*
GET /api/v1/books/{bookID}/ratings.

Response:
  - 200: Aggregate
  - 404: ErrNotFound: Unknown book
*/
func (handler *Handler) ratings(writer http.ResponseWriter, request *http.Request) {
	aggregate, err := handler.service.Ratings(request.Context(), requestutil.Param(request, "bookID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, aggregate)
}

/*
GET /api/v1/library?status=&page=&limit=.

Response:
  - 200: []LibraryEntry with pagination meta
  - 400: ErrValidation: Unknown status filter
*/
func (handler *Handler) listLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := LibraryFilter{}
	if raw := request.URL.Query().Get(FieldStatus); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			respond.Error(writer, request, validate.FieldErr(FieldStatus, "must be one of want_to_read, reading, read"))
			return
		}
		filter.Status = status
	}

	page := pagination.FromRequest(request)
	entries, total, err := handler.service.ListLibrary(request.Context(), userID, filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := make([]libraryEntryResponse, len(entries))
	for i, entry := range entries {
		items[i] = libraryEntryResponse{
			statusResponse: newStatusResponse(&Result{
				Record:          &entry.Record,
				TotalPages:      entry.Book.PageCount,
				ProgressPercent: entry.ProgressPercent,
			}),
			Book: entry.Book,
		}
	}

	respond.Paginated(writer, items, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
DELETE /api/v1/library/{bookID}.

Description: Removes the book from the caller's library along with their notes on it.

Response:
  - 204: No Content
  - 404: ErrNotFound: Book not in the library
*/
func (handler *Handler) removeFromLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFromLibrary(request.Context(), requestutil.Param(request, "bookID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
