// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters, query values, JSON bodies and the
authenticated identity from incoming requests.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/ctxutil"
	"github.com/taibuivan/readlog/internal/platform/sec"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/convert"
)

// maxBodyBytes caps JSON request bodies. Reviews are the largest payloads we accept.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body into target.

Unknown fields are ignored and an empty body decodes to the zero value, matching
the API's lenient input policy.

Returns:
  - error: validate.ErrInvalidJSON if the body is not valid JSON
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

// QueryInt parses an integer query parameter, returning def when absent or malformed.
func QueryInt(request *http.Request, name string, def int) int {
	return convert.ToIntD(request.URL.Query().Get(name), def)
}

// Claims returns the authenticated user claims, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredUserID returns the ID of the authenticated caller.

Returns:
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.UserID(request.Context())
	if userID == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
