// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/library/progress"
	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/pkg/pointer"
)

var errDatabaseDown = errors.New("database down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore is an in-memory [Store].
type memoryStore struct {
	mu      sync.Mutex
	books   map[string]*Book
	failing bool
}

func newMemoryStore(books ...*Book) *memoryStore {
	store := &memoryStore{books: make(map[string]*Book)}
	for _, book := range books {
		store.books[book.ID] = book
	}
	return store
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*Book, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	book, ok := store.books[id]
	if !ok {
		return nil, errBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (store *memoryStore) TotalPages(ctx context.Context, id string) (*int, error) {
	book, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return book.PageCount, nil
}

func (store *memoryStore) Search(_ context.Context, query string, limit int) ([]*Book, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.failing {
		return nil, apperr.Internal(errDatabaseDown)
	}

	needle := strings.ToLower(query)
	var result []*Book
	for _, book := range store.books {
		if strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) ||
			pointer.Val(book.ISBN13) == query {
			result = append(result, book)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (store *memoryStore) Create(_ context.Context, book *Book) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	store.books[book.ID] = book
	return nil
}

func (store *memoryStore) UpsertExternal(_ context.Context, book *Book) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.books {
		if existing.Source == book.Source && pointer.Equal(existing.ExternalID, book.ExternalID) {
			book.ID = existing.ID
			book.Slug = existing.Slug
			book.CreatedAt = existing.CreatedAt
			break
		}
	}
	book.UpdatedAt = time.Now()
	store.books[book.ID] = book
	return nil
}

func (store *memoryStore) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.books)
}

// stubSource serves fixed volumes.
type stubSource struct {
	volumes []catalog.Volume
	err     error
}

func (source *stubSource) Search(context.Context, string, int) ([]catalog.Volume, error) {
	if source.err != nil {
		return nil, source.err
	}
	return source.volumes, nil
}

func (source *stubSource) Volume(_ context.Context, externalID string) (*catalog.Volume, error) {
	if source.err != nil {
		return nil, source.err
	}
	for _, volume := range source.volumes {
		if volume.ExternalID == externalID {
			copied := volume
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Catalog volume")
}

// stubRatings returns a fixed aggregate for every book.
type stubRatings struct{}

func (stubRatings) Aggregate(_ context.Context, bookID string) (*progress.Aggregate, error) {
	return &progress.Aggregate{BookID: bookID, AverageRating: 4.5, RatingCount: 2}, nil
}
