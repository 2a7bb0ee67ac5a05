// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/constants"
	"github.com/taibuivan/readlog/internal/platform/middleware"
	requestutil "github.com/taibuivan/readlog/internal/platform/request"
	"github.com/taibuivan/readlog/internal/platform/respond"
	"github.com/taibuivan/readlog/internal/platform/sec"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/internal/users/auth"
)

// # Handler Definition

// Handler implements the self-service account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
RegisterRoutes attaches the account endpoints to the versioned API router.

Session routes live under /auth so that the browser sends the refresh cookie,
which is how the current device is recognised.
*/
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Patch("/me", handler.updateMe)
		r.Delete("/me", handler.deleteMe)

		r.Get("/auth/sessions", handler.listSessions)
		r.Delete("/auth/sessions/{sessionID}", handler.revokeSession)
	})
}

// # Request Payloads

type updateMeRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

type deleteMeRequest struct {
	Password string `json:"password"`
}

// # Profile Handlers

/*
PATCH /api/v1/me.

Response:
  - 200: auth.User: Updated profile
  - 400: ErrValidation: Bad email or display name
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.MaxLen(auth.FieldDisplayName, *input.DisplayName, auth.MaxDisplayNameLength)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		validator.Required(auth.FieldEmail, email).Email(auth.FieldEmail, email)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		Email:       input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/me.

Request:
  - Body: {"password": "..."}

Response:
  - 204: No Content
  - 401: ErrUnauthorized: Password is incorrect
*/
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input deleteMeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Password == "" {
		respond.Error(writer, request, validate.FieldErr(auth.FieldPassword, "This field is required"))
		return
	}

	if err := handler.service.DeleteAccount(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Session Handlers

// GET /api/v1/auth/sessions.
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	currentTokenHash := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		currentTokenHash = sec.HashToken(cookie.Value)
	}

	sessions, err := handler.service.ListSessions(request.Context(), userID, currentTokenHash)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if sessions == nil {
		sessions = []SessionInfo{}
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/v1/auth/sessions/{sessionID}.

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown, revoked or foreign session
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RevokeSession(request.Context(), userID, requestutil.Param(request, "sessionID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
