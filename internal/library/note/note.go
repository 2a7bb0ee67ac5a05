// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package note stores a reader's private notes on a book, optionally pinned to a page.
*/
package note

import "time"

// MaxContentLength is the maximum note length in characters.
const MaxContentLength = 10000

// Note is a row of library.note.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	BookID    string    `json:"book_id"`
	Page      *int      `json:"page"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput is the body of a new note.
type CreateInput struct {
	Page    *int   `json:"page"`
	Content string `json:"content"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Page    *int    `json:"page"`
	Content *string `json:"content"`
}
