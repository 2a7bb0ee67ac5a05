// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

const (
	bookDune   = "0195f0a0-0000-7000-8000-00000000d00e"
	bookNoSize = "0195f0a0-0000-7000-8000-0000000000aa"
	alice      = "user-alice"
	bob        = "user-bob"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubBooks map[string]*int

func (books stubBooks) TotalPages(_ context.Context, bookID string) (*int, error) {
	pages, ok := books[bookID]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return pages, nil
}

type memoryStore struct {
	mu    sync.Mutex
	notes map[string]*Note
	tick  time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		notes: make(map[string]*Note),
		tick:  time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func (store *memoryStore) next() time.Time {
	store.tick = store.tick.Add(time.Second)
	return store.tick
}

func (store *memoryStore) ListForBook(_ context.Context, userID, bookID string) ([]*Note, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var notes []*Note
	for _, note := range store.notes {
		if note.UserID == userID && note.BookID == bookID {
			copied := *note
			notes = append(notes, &copied)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		pi, pj := pageOrder(notes[i].Page), pageOrder(notes[j].Page)
		if pi != pj {
			return pi < pj
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
	return notes, nil
}

func pageOrder(page *int) int {
	if page == nil {
		return -1
	}
	return *page
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*Note, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	note, ok := store.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (store *memoryStore) Create(_ context.Context, note *Note) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	note.CreatedAt = store.next()
	note.UpdatedAt = note.CreatedAt
	copied := *note
	store.notes[note.ID] = &copied
	return nil
}

func (store *memoryStore) Update(_ context.Context, note *Note) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return ErrNoteNotFound
	}
	note.UpdatedAt = store.next()
	copied := *note
	store.notes[note.ID] = &copied
	return nil
}

func (store *memoryStore) Delete(_ context.Context, id, userID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	existing, ok := store.notes[id]
	if !ok || existing.UserID != userID {
		return ErrNoteNotFound
	}
	delete(store.notes, id)
	return nil
}
