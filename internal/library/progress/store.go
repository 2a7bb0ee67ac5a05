// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

// ErrNoRecord is returned by [Store.GetRecord] when the reader has not shelved the book.
var ErrNoRecord = apperr.NotFound("Reading record")

// BookCatalog resolves a book's page count. Implemented by the book repository.
type BookCatalog interface {

	/*
		TotalPages returns the book's page count.

		Returns:
		  - *int: nil when the page count is unknown
		  - error: apperr NotFound when the book does not exist
	*/
	TotalPages(context context.Context, bookID string) (*int, error)
}

// Store defines the data access contract for reading records.
type Store interface {
	RatingLister

	/*
		GetRecord returns the reader's record for a book.

		Returns:
		  - *Record: Hydrated entity
		  - error: [ErrNoRecord] when absent
	*/
	GetRecord(context context.Context, userID, bookID string) (*Record, error)

	/*
		UpsertRecord inserts or replaces the record keyed by (UserID, BookID),
		refreshing CreatedAt/UpdatedAt on the passed entity.

		Returns:
		  - error: Persistence failures
	*/
	UpsertRecord(context context.Context, record *Record) error

	/*
		ListLibrary returns one page of the reader's library, most recently updated first.

		Returns:
		  - []*LibraryEntry: Entries joined with their books
		  - int: Total entries matching the filter
		  - error: Database retrieval failures
	*/
	ListLibrary(context context.Context, userID string, filter LibraryFilter, limit, offset int) ([]*LibraryEntry, int, error)

	/*
		DeleteRecord removes the record and the reader's notes on that book atomically.

		Returns:
		  - error: [ErrNoRecord] when absent
	*/
	DeleteRecord(context context.Context, userID, bookID string) error
}
