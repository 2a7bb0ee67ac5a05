// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/middleware"
	requestutil "github.com/taibuivan/readlog/internal/platform/request"
	"github.com/taibuivan/readlog/internal/platform/respond"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/convert"
)

// Handler implements the HTTP layer for reader statistics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /stats.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.summary)
	return router
}

/*
GET /api/v1/stats?year=.

Request:
  - year: int (optional, defaults to the current UTC year)

Response:
  - 200: Summary
  - 400: ErrValidation: year is not a number or out of range
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	year := 0
	if raw := request.URL.Query().Get("year"); raw != "" {
		if year = convert.ToIntD(raw, -1); year < 0 {
			respond.Error(writer, request, validate.FieldErr("year", "Must be a number"))
			return
		}
	}

	summary, err := handler.service.Summary(request.Context(), userID, year)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
