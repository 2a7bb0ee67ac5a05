// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// LibraryReadingRecordTable represents the 'library.readingrecord' table.
// The primary key is (userid, bookid).
type LibraryReadingRecordTable struct {
	Table       string
	UserID      string
	BookID      string
	Status      string
	CurrentPage string
	Rating      string
	ReviewText  string
	StartedAt   string
	FinishedAt  string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryReadingRecord is the schema definition for library.readingrecord.
var LibraryReadingRecord = LibraryReadingRecordTable{
	Table:       "library.readingrecord",
	UserID:      "userid",
	BookID:      "bookid",
	Status:      "status",
	CurrentPage: "currentpage",
	Rating:      "rating",
	ReviewText:  "reviewtext",
	StartedAt:   "startedat",
	FinishedAt:  "finishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns the selectable columns in scan order.
func (t LibraryReadingRecordTable) Columns() []string {
	return []string{
		t.UserID, t.BookID, t.Status, t.CurrentPage, t.Rating, t.ReviewText,
		t.StartedAt, t.FinishedAt, t.CreatedAt, t.UpdatedAt,
	}
}

// LibraryNoteTable represents the 'library.note' table.
type LibraryNoteTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	Page      string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// LibraryNote is the schema definition for library.note.
var LibraryNote = LibraryNoteTable{
	Table:     "library.note",
	ID:        "id",
	UserID:    "userid",
	BookID:    "bookid",
	Page:      "page",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the selectable columns in scan order.
func (t LibraryNoteTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.Page, t.Content, t.CreatedAt, t.UpdatedAt}
}
