// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"log/slog"

	"github.com/taibuivan/readlog/pkg/uuid"
)

// Service exposes the library use cases to the HTTP layer. Writes go through
// the [Engine]; reads hit the store directly.
type Service struct {
	engine     *Engine
	aggregator *Aggregator
	store      Store
	books      BookCatalog
	logger     *slog.Logger
}

// NewService constructs a [Service] and its engine.
func NewService(store Store, books BookCatalog, logger *slog.Logger) *Service {
	engine := NewEngine(store, books, logger)
	return &Service{
		engine:     engine,
		aggregator: engine.aggregator,
		store:      store,
		books:      books,
		logger:     logger,
	}
}

// UpdateStatus applies a reader's status update. See [Engine.ApplyStatusUpdate].
func (service *Service) UpdateStatus(context context.Context, bookID, userID string, update StatusUpdate) (*Result, error) {
	return service.engine.ApplyStatusUpdate(context, bookID, userID, update)
}

/*
GetStatus returns the caller's record for a book with its progress percent.

Returns:
  - *Result: Aggregate is left nil
  - error: NotFound for an unknown book or a book not in the library
*/
func (service *Service) GetStatus(context context.Context, bookID, userID string) (*Result, error) {
	totalPages, err := service.books.TotalPages(context, bookID)
	if err != nil {
		return nil, err
	}

	record, err := service.store.GetRecord(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Record:          record,
		TotalPages:      totalPages,
		ProgressPercent: PercentOf(record.CurrentPage, totalPages),
	}, nil
}

// Ratings returns the rating aggregate for an existing book.
func (service *Service) Ratings(context context.Context, bookID string) (*Aggregate, error) {
	if _, err := service.books.TotalPages(context, bookID); err != nil {
		return nil, err
	}
	return service.aggregator.ComputeAggregate(context, bookID)
}

// Aggregate returns the rating aggregate without checking that the book exists.
// The book service calls it after loading the book itself.
func (service *Service) Aggregate(context context.Context, bookID string) (*Aggregate, error) {
	return service.aggregator.ComputeAggregate(context, bookID)
}

// ListLibrary returns one page of the reader's library.
func (service *Service) ListLibrary(context context.Context, userID string, filter LibraryFilter, limit, offset int) ([]*LibraryEntry, int, error) {
	entries, total, err := service.store.ListLibrary(context, userID, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, entry := range entries {
		entry.ProgressPercent = PercentOf(entry.CurrentPage, entry.Book.PageCount)
	}
	return entries, total, nil
}

// RemoveFromLibrary deletes the reader's record for a book together with their notes on it.
func (service *Service) RemoveFromLibrary(context context.Context, bookID, userID string) error {
	if !uuid.Valid(bookID) {
		return ErrNoRecord
	}

	if err := service.store.DeleteRecord(context, userID, bookID); err != nil {
		return err
	}

	service.logger.Info("library_entry_removed",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
	)
	return nil
}
