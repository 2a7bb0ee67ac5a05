// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package progress owns the per-user reading library: one [Record] per (user, book)
holding status, page position, rating, review and reading dates.

The [Engine] is the only writer of records. It turns a lenient client update into
a consistent record (clamping, auto-completion, resumption and date rules) and
reports the book's fresh [Aggregate] alongside the persisted result.
*/
package progress

import (
	"math"
	"time"
)

// # Reading Status

// Status is the shelf a book sits on for one reader.
type Status string

const (
	StatusWantToRead Status = "want_to_read"
	StatusReading    Status = "reading"
	StatusRead       Status = "read"
)

// ParseStatus returns the [Status] named by s and whether it is a known value.
func ParseStatus(s string) (Status, bool) {
	switch status := Status(s); status {
	case StatusWantToRead, StatusReading, StatusRead:
		return status, true
	}
	return "", false
}

// # Domain Entities

// Record is a reader's persisted state for one book.
//
// StartedAt and FinishedAt are calendar dates (UTC midnight); Rating is nil when
// the reader has not rated the book.
type Record struct {
	UserID      string     `json:"user_id"`
	BookID      string     `json:"book_id"`
	Status      Status     `json:"status"`
	CurrentPage int        `json:"current_page"`
	Rating      *int       `json:"rating"`
	ReviewText  *string    `json:"review_text"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StatusUpdate is a client-submitted change. Every field is optional.
//
// Status holds the raw string so that unknown values can be coerced to
// "keep current" instead of being rejected.
type StatusUpdate struct {
	Status      *string
	CurrentPage *int
	Rating      *int
	ReviewText  *string
}

// UserRating is one reader's rating of a book.
type UserRating struct {
	UserID string
	Rating int
}

// Aggregate summarizes every reader's rating of a book.
//
// Distribution[i] counts the ratings of i+1 stars.
type Aggregate struct {
	BookID        string  `json:"book_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
	Distribution  [5]int  `json:"distribution"`
}

// Result is what a status update returns: the stored record, the reader's
// progress through the book and the book's updated rating aggregate.
type Result struct {
	Record          *Record
	TotalPages      *int
	ProgressPercent int
	Aggregate       *Aggregate
}

// BookSummary is the slice of book metadata shown next to a library entry.
type BookSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	CoverURL  string `json:"cover_url,omitempty"`
	PageCount *int   `json:"page_count"`
}

// LibraryEntry is a record joined with its book.
type LibraryEntry struct {
	Record
	Book            BookSummary `json:"book"`
	ProgressPercent int         `json:"progress_percent"`
}

// LibraryFilter narrows a library listing. An empty Status lists every shelf.
type LibraryFilter struct {
	Status Status
}

// # Derived Values

// PercentOf returns round(100*page/total), or 0 when the total is unknown or zero.
func PercentOf(page int, totalPages *int) int {
	if totalPages == nil || *totalPages <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(page) / float64(*totalPages)))
}

// # Field Identifiers

const (
	FieldStatus      = "status"
	FieldCurrentPage = "current_page"
	FieldRating      = "rating"
	FieldReviewText  = "review_text"
	FieldBookID      = "book_id"
)

// Rating bounds. Zero on input means "no rating given".
const (
	MinRating = 1
	MaxRating = 5
)
