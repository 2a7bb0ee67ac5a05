// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into HTTP-facing application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"fk_violation", &pgconn.PgError{Code: "23503"}, http.StatusNotFound},
		{"check_violation", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"unknown_pg_error", &pgconn.PgError{Code: "57014"}, http.StatusInternalServerError},
		{"plain_error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_Passthrough keeps nil and already-classified errors untouched.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	original := apperr.Forbidden("nope")
	assert.Same(t, original, dberr.Wrap(original, "noop"))
}

/*
TestWrapNotFound names the missing resource.
*/
func TestWrapNotFound(t *testing.T) {
	ae := apperr.As(dberr.WrapNotFound(pgx.ErrNoRows, "get_book", "Book"))
	require.NotNil(t, ae)
	assert.Equal(t, "Book not found", ae.Message)
}
