// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/pointer"
)

// Engine applies status updates to reading records.
type Engine struct {
	store      Store
	books      BookCatalog
	aggregator *Aggregator
	logger     *slog.Logger
	now        func() time.Time
}

// NewEngine constructs an [Engine]. The aggregator is built over the same store.
func NewEngine(store Store, books BookCatalog, logger *slog.Logger) *Engine {
	return &Engine{
		store:      store,
		books:      books,
		aggregator: NewAggregator(store),
		logger:     logger,
		now:        time.Now,
	}
}

/*
ApplyStatusUpdate merges update into the caller's record for bookID and persists it.

Parameters:
  - context: context.Context
  - bookID: string (catalog.book ID)
  - userID: string (authenticated reader)
  - update: StatusUpdate

Returns:
  - *Result: persisted record, progress percent and fresh rating aggregate
  - error: ValidationError for a rating outside [1,5], NotFound for an unknown
    book, Internal for storage failures
*/
func (engine *Engine) ApplyStatusUpdate(context context.Context, bookID, userID string, update StatusUpdate) (*Result, error) {
	if err := validateRating(update.Rating); err != nil {
		return nil, err
	}

	totalPages, err := engine.books.TotalPages(context, bookID)
	if err != nil {
		return nil, err
	}

	existing, err := engine.store.GetRecord(context, userID, bookID)
	if err != nil && !errors.Is(err, ErrNoRecord) {
		return nil, err
	}

	next := resolve(existing, totalPages, update, engine.today())
	next.UserID = userID
	next.BookID = bookID

	if err := engine.store.UpsertRecord(context, next); err != nil {
		return nil, err
	}

	aggregate, err := engine.aggregator.ComputeAggregate(context, bookID)
	if err != nil {
		return nil, err
	}

	engine.logger.Info("reading_status_updated",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.String("status", string(next.Status)),
		slog.Int("current_page", next.CurrentPage),
	)

	return &Result{
		Record:          next,
		TotalPages:      totalPages,
		ProgressPercent: PercentOf(next.CurrentPage, totalPages),
		Aggregate:       aggregate,
	}, nil
}

// today returns the current UTC calendar date at midnight.
func (engine *Engine) today() time.Time {
	now := engine.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func validateRating(rating *int) error {
	if rating == nil || *rating == 0 {
		return nil
	}
	if *rating < MinRating || *rating > MaxRating {
		return validate.FieldErr(FieldRating, fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

/*
resolve computes the record to persist. Rules apply in order, later ones win:

 1. A missing record starts from want_to_read at page 0.
 2. The page is clamped to [0, total] (only the lower bound when total is unknown).
 3. A known total reached by the page forces read.
 4. read with a known total and a page short of it is demoted to reading.
 5. Entering reading keeps an existing start date or sets today, and clears the finish date.
 6. read keeps an existing finish date or sets today.
 7. want_to_read clears the finish date.

Rating and review replace the stored values only when provided.
*/
func resolve(existing *Record, totalPages *int, update StatusUpdate, today time.Time) *Record {
	base := Record{Status: StatusWantToRead}
	if existing != nil {
		base = *existing
	}

	requested, explicit := base.Status, false
	if update.Status != nil {
		if status, ok := ParseStatus(*update.Status); ok {
			requested, explicit = status, true
		}
	}

	known := totalPages != nil && *totalPages > 0

	page := base.CurrentPage
	switch {
	case update.CurrentPage != nil:
		page = *update.CurrentPage
	case explicit && requested == StatusRead && known:
		// "Mark as read" without a page means the whole book.
		page = *totalPages
	}
	if page < 0 {
		page = 0
	}
	if known && page > *totalPages {
		page = *totalPages
	}

	status := requested
	if known && page >= *totalPages {
		status = StatusRead
	} else if known && status == StatusRead {
		status = StatusReading
	}

	next := base
	next.Status = status
	next.CurrentPage = page

	switch status {
	case StatusReading:
		if next.StartedAt == nil {
			next.StartedAt = pointer.To(today)
		}
		next.FinishedAt = nil
	case StatusRead:
		if base.Status != StatusRead || base.FinishedAt == nil {
			next.FinishedAt = pointer.To(today)
		}
	case StatusWantToRead:
		next.FinishedAt = nil
	}

	if update.Rating != nil && *update.Rating != 0 {
		next.Rating = pointer.To(*update.Rating)
	}
	if update.ReviewText != nil {
		next.ReviewText = pointer.To(*update.ReviewText)
	}

	return &next
}
