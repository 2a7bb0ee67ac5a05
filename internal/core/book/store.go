// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Store defines the data access contract for catalog.book.
type Store interface {

	/*
		FindByID retrieves a book by its UUID.

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr NotFound "Book" when absent
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		TotalPages returns the book's page count, nil when unknown.

		Returns:
		  - error: apperr NotFound "Book" when absent
	*/
	TotalPages(context context.Context, id string) (*int, error)

	/*
		Search matches title and author case-insensitively, or an exact ISBN.

		Returns:
		  - []*Book: At most limit books, title order
		  - error: Database retrieval failures
	*/
	Search(context context.Context, query string, limit int) ([]*Book, error)

	// Create inserts a manual book. ID must be set by the caller.
	Create(context context.Context, book *Book) error

	/*
		UpsertExternal inserts an imported volume or refreshes the existing row with
		the same (source, external_id). ID, CreatedAt and UpdatedAt are written back.
	*/
	UpsertExternal(context context.Context, book *Book) error
}
