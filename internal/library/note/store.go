// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

// ErrNoteNotFound is returned for missing notes and for notes owned by someone else.
var ErrNoteNotFound = apperr.NotFound("Note")

// BookCatalog resolves a book's page count. Implemented by the book repository.
type BookCatalog interface {
	TotalPages(context context.Context, bookID string) (*int, error)
}

// Store defines the data access contract for library.note.
type Store interface {

	// ListForBook returns the user's notes on a book ordered by page, then creation.
	ListForBook(context context.Context, userID, bookID string) ([]*Note, error)

	/*
		FindByID retrieves a note regardless of owner.

		Returns:
		  - error: [ErrNoteNotFound] when absent
	*/
	FindByID(context context.Context, id string) (*Note, error)

	// Create inserts a note and writes back CreatedAt/UpdatedAt.
	Create(context context.Context, note *Note) error

	// Update persists Page and Content and refreshes UpdatedAt.
	Update(context context.Context, note *Note) error

	/*
		Delete removes the note when it belongs to userID.

		Returns:
		  - error: [ErrNoteNotFound] when no row matched
	*/
	Delete(context context.Context, id, userID string) error
}
