// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book owns the local book catalogue: manual entries, volumes imported from
the external catalog, and the merged local+external search.
*/
package book

import (
	"time"

	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/library/progress"
)

// Source values stored in catalog.book.source.
const (
	SourceManual   = "manual"
	SourceExternal = catalog.SourceName
)

// Field length limits for manual entries.
const (
	MaxTitleLength       = 500
	MaxAuthorLength      = 300
	MaxDescriptionLength = 10000
)

// Book is a row of catalog.book.
type Book struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	ISBN13        *string   `json:"isbn13"`
	ISBN10        *string   `json:"isbn10"`
	PageCount     *int      `json:"page_count"`
	CoverURL      string    `json:"cover_url"`
	PublishedYear *int      `json:"published_year"`
	Source        string    `json:"source"`
	ExternalID    *string   `json:"external_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Details is a book together with its community rating aggregate.
type Details struct {
	*Book
	Ratings *progress.Aggregate `json:"ratings"`
}

// CreateInput is a manually entered book.
type CreateInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	ISBN          string `json:"isbn"`
	PageCount     *int   `json:"page_count"`
	CoverURL      string `json:"cover_url"`
	PublishedYear *int   `json:"published_year"`
}

// Hit origins.
const (
	OriginLocal    = "local"
	OriginExternal = "external"
)

// SearchHit is one row of a merged search. Local hits carry ID; external hits
// carry only ExternalID until imported.
type SearchHit struct {
	Origin        string `json:"origin"`
	ID            string `json:"id,omitempty"`
	ExternalID    string `json:"external_id,omitempty"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PageCount     *int   `json:"page_count"`
	ISBN13        string `json:"isbn13,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	PublishedYear *int   `json:"published_year,omitempty"`
}

// SearchResult is the merged result. ExternalError is set when the external
// catalog failed and only local hits are returned.
type SearchResult struct {
	Query         string      `json:"query"`
	Hits          []SearchHit `json:"hits"`
	ExternalError bool        `json:"external_error"`
}
