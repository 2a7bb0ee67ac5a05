// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/library/progress"
	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/validate"
	"github.com/taibuivan/readlog/pkg/convert"
	"github.com/taibuivan/readlog/pkg/pointer"
	"github.com/taibuivan/readlog/pkg/slice"
	"github.com/taibuivan/readlog/pkg/slug"
	"github.com/taibuivan/readlog/pkg/uuid"
)

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 40
	MaxQueryLength     = 200
)

var errBookNotFound = apperr.NotFound("Book")

// RatingProvider supplies the community aggregate shown on the book page.
type RatingProvider interface {
	Aggregate(context context.Context, bookID string) (*progress.Aggregate, error)
}

// Service implements the book use cases.
type Service struct {
	store   Store
	catalog catalog.Source
	ratings RatingProvider
	logger  *slog.Logger
}

// NewService constructs a book [Service].
func NewService(store Store, source catalog.Source, ratings RatingProvider, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: source,
		ratings: ratings,
		logger:  logger,
	}
}

// # Read

// Get returns the book with its rating aggregate.
func (service *Service) Get(context context.Context, id string) (*Details, error) {
	book, err := service.store.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	aggregate, err := service.ratings.Aggregate(context, book.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Book: book, Ratings: aggregate}, nil
}

/*
Search queries the local catalogue and the external catalog concurrently.

Local hits come first. External hits whose external ID or ISBN already appears
locally are dropped. A failing external catalog does not fail the search; the
result is flagged with ExternalError instead.

Parameters:
  - query: free text or an ISBN
  - limit: per-origin cap, clamped to [1, MaxSearchLimit]

Returns:
  - *SearchResult: Merged hits
  - error: Validation failure or a local database error
*/
func (service *Service) Search(context context.Context, query string, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)

	validator := &validate.Validator{}
	validator.Required("q", query).MaxLen("q", query, MaxQueryLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = convert.Clamp(limit, 1, MaxSearchLimit)

	var (
		local       []*Book
		external    []catalog.Volume
		externalErr error
	)

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		var err error
		local, err = service.store.Search(groupContext, query, limit)
		return err
	})

	group.Go(func() error {
		// The external catalog is best effort: never cancel the local query.
		external, externalErr = service.catalog.Search(groupContext, query, limit)
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if externalErr != nil {
		service.logger.Warn("external_search_failed",
			slog.String("query", query),
			slog.Any("error", externalErr),
		)
	}

	return &SearchResult{
		Query:         query,
		Hits:          mergeHits(local, external),
		ExternalError: externalErr != nil,
	}, nil
}

// mergeHits lists local books first, then external volumes not already known locally.
func mergeHits(local []*Book, external []catalog.Volume) []SearchHit {
	known := slice.KeySet(local, func(book *Book) []string {
		keys := []string{pointer.Val(book.ISBN13), pointer.Val(book.ISBN10)}
		if book.Source == SourceExternal {
			keys = append(keys, externalKey(pointer.Val(book.ExternalID)))
		}
		return keys
	})

	fresh := slice.Filter(external, func(volume catalog.Volume) bool {
		for _, key := range []string{externalKey(volume.ExternalID), volume.ISBN13, volume.ISBN10} {
			if _, ok := known[key]; ok && key != "" {
				return false
			}
		}
		return true
	})

	hits := make([]SearchHit, 0, len(local)+len(fresh))
	hits = append(hits, slice.Map(local, localHit)...)
	hits = append(hits, slice.Map(fresh, externalHit)...)
	return hits
}

// externalKey keeps external IDs apart from ISBNs in the merge key set.
func externalKey(id string) string {
	if id == "" {
		return ""
	}
	return "ext:" + id
}

func localHit(book *Book) SearchHit {
	return SearchHit{
		Origin:        OriginLocal,
		ID:            book.ID,
		ExternalID:    pointer.Val(book.ExternalID),
		Title:         book.Title,
		Author:        book.Author,
		PageCount:     book.PageCount,
		ISBN13:        pointer.Val(book.ISBN13),
		CoverURL:      book.CoverURL,
		PublishedYear: book.PublishedYear,
	}
}

func externalHit(volume catalog.Volume) SearchHit {
	return SearchHit{
		Origin:        OriginExternal,
		ExternalID:    volume.ExternalID,
		Title:         volume.Title,
		Author:        strings.Join(volume.Authors, ", "),
		PageCount:     volume.PageCount,
		ISBN13:        volume.ISBN13,
		CoverURL:      volume.CoverURL,
		PublishedYear: volume.PublishedYear,
	}
}

// # Write

/*
Import fetches a volume from the external catalog and stores it locally.
Importing the same volume twice refreshes the existing row.

Returns:
  - *Book: The stored book
  - error: NotFound for an unknown volume, BadGateway when the catalog is down
*/
func (service *Service) Import(context context.Context, externalID string) (*Book, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, validate.FieldErr("external_id", "This field is required")
	}

	volume, err := service.catalog.Volume(context, externalID)
	if err != nil {
		return nil, err
	}

	book := fromVolume(volume)
	if err := service.store.UpsertExternal(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_imported",
		slog.String("book_id", book.ID),
		slog.String("external_id", externalID),
	)
	return book, nil
}

func fromVolume(volume *catalog.Volume) *Book {
	title := truncate(volume.Title, MaxTitleLength)
	return &Book{
		ID:            uuid.New(),
		Slug:          slug.From(title),
		Title:         title,
		Author:        truncate(strings.Join(volume.Authors, ", "), MaxAuthorLength),
		Description:   truncate(volume.Description, MaxDescriptionLength),
		ISBN13:        nonEmpty(volume.ISBN13),
		ISBN10:        nonEmpty(volume.ISBN10),
		PageCount:     volume.PageCount,
		CoverURL:      volume.CoverURL,
		PublishedYear: volume.PublishedYear,
		Source:        SourceExternal,
		ExternalID:    nonEmpty(volume.ExternalID),
	}
}

// Create validates and stores a manually entered book.
func (service *Service) Create(context context.Context, input CreateInput) (*Book, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)
	input.CoverURL = strings.TrimSpace(input.CoverURL)
	isbn := validate.NormalizeISBN(input.ISBN)

	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, MaxTitleLength).
		MaxLen("author", input.Author, MaxAuthorLength).
		MaxLen("description", input.Description, MaxDescriptionLength)
	if input.PageCount != nil {
		validator.Min("page_count", *input.PageCount, 0)
	}
	if input.PublishedYear != nil {
		validator.Range("published_year", *input.PublishedYear, 1, 9999)
	}
	if isbn != "" {
		validator.ISBN("isbn", isbn)
	}
	if input.CoverURL != "" {
		validator.URL("cover_url", input.CoverURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	book := &Book{
		ID:            uuid.New(),
		Slug:          slug.From(input.Title),
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		PageCount:     input.PageCount,
		CoverURL:      input.CoverURL,
		PublishedYear: input.PublishedYear,
		Source:        SourceManual,
	}
	switch len(isbn) {
	case 13:
		book.ISBN13 = &isbn
	case 10:
		book.ISBN10 = &isbn
	}

	if err := service.store.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)
	return book, nil
}

// # Helpers

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
