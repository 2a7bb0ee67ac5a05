// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog talks to the external book-metadata service.

[GoogleBooks] is the HTTP client; [CachedSource] wraps any [Source] with a
fixed-TTL read-through cache ([RedisCache] in the API server, [MemoryCache] in
the CLI and tests).
*/
package catalog

import (
	"context"
	"time"
)

// SourceName is stored in catalog.book.source for imported volumes.
const SourceName = "googlebooks"

// Volume is one book as described by the external catalog.
type Volume struct {
	ExternalID    string   `json:"external_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description,omitempty"`
	PageCount     *int     `json:"page_count"`
	ISBN13        string   `json:"isbn13,omitempty"`
	ISBN10        string   `json:"isbn10,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty"`
	PublishedYear *int     `json:"published_year,omitempty"`
}

// Source looks books up in an external catalog.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]Volume, error)
	Volume(ctx context.Context, externalID string) (*Volume, error)
}

// Cache is a key→bytes store with a fixed time-to-live. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
