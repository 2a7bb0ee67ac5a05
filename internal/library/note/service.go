// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/uuid"
)

// Service implements the note use cases. Every operation is scoped to the caller.
type Service struct {
	store  Store
	books  BookCatalog
	logger *slog.Logger
}

// NewService constructs a note [Service].
func NewService(store Store, books BookCatalog, logger *slog.Logger) *Service {
	return &Service{store: store, books: books, logger: logger}
}

// List returns the caller's notes on a book.
func (service *Service) List(context context.Context, bookID, userID string) ([]*Note, error) {
	if _, err := service.books.TotalPages(context, bookID); err != nil {
		return nil, err
	}
	return service.store.ListForBook(context, userID, bookID)
}

/*
Create adds a note to a book.

Returns:
  - *Note: The stored note
  - error: NotFound for an unknown book, ValidationError for empty or oversized
    content or a page outside the book
*/
func (service *Service) Create(context context.Context, bookID, userID string, input CreateInput) (*Note, error) {
	totalPages, err := service.books.TotalPages(context, bookID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if err := validateNote(content, input.Page, totalPages); err != nil {
		return nil, err
	}

	note := &Note{
		ID:      uuid.New(),
		UserID:  userID,
		BookID:  bookID,
		Page:    input.Page,
		Content: content,
	}
	if err := service.store.Create(context, note); err != nil {
		return nil, err
	}

	service.logger.Info("note_created",
		slog.String("note_id", note.ID),
		slog.String("book_id", bookID),
		slog.String("user_id", userID),
	)
	return note, nil
}

// Update changes the page and/or content of one of the caller's notes.
func (service *Service) Update(context context.Context, noteID, userID string, input UpdateInput) (*Note, error) {
	note, err := service.owned(context, noteID, userID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		note.Content = strings.TrimSpace(*input.Content)
	}
	if input.Page != nil {
		note.Page = input.Page
	}

	totalPages, err := service.books.TotalPages(context, note.BookID)
	if err != nil {
		return nil, err
	}
	if err := validateNote(note.Content, note.Page, totalPages); err != nil {
		return nil, err
	}

	if err := service.store.Update(context, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes one of the caller's notes.
func (service *Service) Delete(context context.Context, noteID, userID string) error {
	if !uuid.Valid(noteID) {
		return ErrNoteNotFound
	}
	if err := service.store.Delete(context, noteID, userID); err != nil {
		return err
	}

	service.logger.Info("note_deleted", slog.String("note_id", noteID), slog.String("user_id", userID))
	return nil
}

// owned loads a note and hides other users' notes behind NotFound.
func (service *Service) owned(context context.Context, noteID, userID string) (*Note, error) {
	if !uuid.Valid(noteID) {
		return nil, ErrNoteNotFound
	}

	note, err := service.store.FindByID(context, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func validateNote(content string, page, totalPages *int) error {
	validator := &validate.Validator{}
	validator.Required("content", content).MaxLen("content", content, MaxContentLength)

	if page != nil {
		validator.Min("page", *page, 0)
		if totalPages != nil {
			validator.Custom("page", *page > *totalPages, fmt.Sprintf("Exceeds the book's %d pages", *totalPages))
		}
	}
	return validator.Err()
}
