// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values so that
// repositories never leak driver errors to the service layer.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes we map explicitly.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap converts a database error into an [apperr.AppError]. The action label ends up
// in the wrapped cause so that logs identify the failing query.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified (e.g. returned from a nested repository call).
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperr.Conflict("Resource already exists")
		case foreignKeyViolation:
			return apperr.NotFound("Referenced resource")
		case checkViolation:
			return apperr.ValidationError("Value violates a storage constraint")
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapNotFound behaves like [Wrap] but names the missing resource in the 404 message.
func WrapNotFound(err error, action, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}
