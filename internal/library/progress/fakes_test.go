// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

type recordKey struct{ userID, bookID string }

// memoryStore is an in-memory [Store] keyed like the real table's primary key.
type memoryStore struct {
	mu       sync.Mutex
	records  map[recordKey]Record
	upserts  int
	failWith error
	clock    func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[recordKey]Record), clock: time.Now}
}

func (store *memoryStore) GetRecord(_ context.Context, userID, bookID string) (*Record, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	record, ok := store.records[recordKey{userID, bookID}]
	if !ok {
		return nil, ErrNoRecord
	}
	return &record, nil
}

func (store *memoryStore) UpsertRecord(_ context.Context, record *Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.failWith != nil {
		return store.failWith
	}

	key := recordKey{record.UserID, record.BookID}
	now := store.clock()
	if previous, ok := store.records[key]; ok {
		record.CreatedAt = previous.CreatedAt
	} else {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	store.records[key] = *record
	store.upserts++
	return nil
}

func (store *memoryStore) ListRatingsForBook(_ context.Context, bookID string) ([]UserRating, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var ratings []UserRating
	for key, record := range store.records {
		if key.bookID == bookID && record.Rating != nil {
			ratings = append(ratings, UserRating{UserID: key.userID, Rating: *record.Rating})
		}
	}
	return ratings, nil
}

func (store *memoryStore) ListLibrary(_ context.Context, userID string, filter LibraryFilter, limit, offset int) ([]*LibraryEntry, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var entries []*LibraryEntry
	for key, record := range store.records {
		if key.userID != userID || (filter.Status != "" && record.Status != filter.Status) {
			continue
		}
		entries = append(entries, &LibraryEntry{Record: record, Book: BookSummary{ID: key.bookID}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].BookID < entries[j].BookID })

	total := len(entries)
	if offset >= total {
		return []*LibraryEntry{}, total, nil
	}
	end := min(offset+limit, total)
	return entries[offset:end], total, nil
}

func (store *memoryStore) DeleteRecord(_ context.Context, userID, bookID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	key := recordKey{userID, bookID}
	if _, ok := store.records[key]; !ok {
		return ErrNoRecord
	}
	delete(store.records, key)
	return nil
}

func (store *memoryStore) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.records)
}

// stubBooks maps book IDs to page counts; a nil entry means "unknown page count".
type stubBooks map[string]*int

func (books stubBooks) TotalPages(_ context.Context, bookID string) (*int, error) {
	total, ok := books[bookID]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return total, nil
}

var errStoreDown = errors.New("connection refused")

// fakeClock is a settable time source shared by the engine and the store.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}
