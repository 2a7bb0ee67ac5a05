// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/core/catalog"
	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/pkg/pointer"
)

const (
	duneID      = "0195f0a0-0000-7000-8000-000000000001"
	hyperionID  = "0195f0a0-0000-7000-8000-000000000002"
	duneVolume  = "B1hSG45JCX4C"
	otherVolume = "zzz-other"
)

func seededBooks() []*Book {
	return []*Book{
		{
			ID: duneID, Slug: "dune", Title: "Dune", Author: "Frank Herbert",
			ISBN13: pointer.To("9780441013593"), PageCount: pointer.To(412),
			Source: SourceExternal, ExternalID: pointer.To(duneVolume),
		},
		{
			ID: hyperionID, Slug: "hyperion", Title: "Hyperion", Author: "Dan Simmons",
			ISBN13: pointer.To("9780553283686"), Source: SourceManual,
		},
	}
}

func externalVolumes() []catalog.Volume {
	return []catalog.Volume{
		{ExternalID: duneVolume, Title: "Dune", Authors: []string{"Frank Herbert"}},
		{ExternalID: "hyp-ext", Title: "Hyperion", ISBN13: "9780553283686"},
		{ExternalID: otherVolume, Title: "Dune Messiah", Authors: []string{"Frank Herbert"}, PageCount: pointer.To(256)},
	}
}

func newTestService(store *memoryStore, source *stubSource) *Service {
	return NewService(store, source, stubRatings{}, discardLogger())
}

func TestSearch_MergesAndDeduplicates(t *testing.T) {
	service := newTestService(newMemoryStore(seededBooks()...), &stubSource{volumes: externalVolumes()})

	result, err := service.Search(context.Background(), "e", 10)
	require.NoError(t, err)
	assert.False(t, result.ExternalError)

	var locals, externals []string
	for _, hit := range result.Hits {
		switch hit.Origin {
		case OriginLocal:
			assert.Empty(t, externals, "local hits must come first")
			locals = append(locals, hit.ID)
		case OriginExternal:
			externals = append(externals, hit.ExternalID)
		}
	}

	assert.ElementsMatch(t, []string{duneID, hyperionID}, locals)
	// Dune is known by external id, Hyperion by ISBN.
	assert.Equal(t, []string{otherVolume}, externals)
}

func TestSearch_ExternalFailureDegrades(t *testing.T) {
	source := &stubSource{err: apperr.BadGateway("Book catalog", errors.New("timeout"))}
	service := newTestService(newMemoryStore(seededBooks()...), source)

	result, err := service.Search(context.Background(), "dune", 10)
	require.NoError(t, err)
	assert.True(t, result.ExternalError)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, OriginLocal, result.Hits[0].Origin)
}

func TestSearch_LocalFailureFails(t *testing.T) {
	store := newMemoryStore(seededBooks()...)
	store.failing = true
	service := newTestService(store, &stubSource{volumes: externalVolumes()})

	_, err := service.Search(context.Background(), "dune", 10)
	assert.ErrorIs(t, err, errDatabaseDown)
}

func TestSearch_RejectsEmptyQuery(t *testing.T) {
	service := newTestService(newMemoryStore(), &stubSource{})

	_, err := service.Search(context.Background(), "   ", 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestImport_IsIdempotent(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store, &stubSource{volumes: externalVolumes()})

	first, err := service.Import(context.Background(), otherVolume)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", first.Title)
	assert.Equal(t, "dune-messiah", first.Slug)
	assert.Equal(t, "Frank Herbert", first.Author)
	assert.Equal(t, SourceExternal, first.Source)
	assert.Equal(t, 256, *first.PageCount)

	second, err := service.Import(context.Background(), otherVolume)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.count())
}

func TestImport_UnknownVolume(t *testing.T) {
	service := newTestService(newMemoryStore(), &stubSource{})

	_, err := service.Import(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Import(context.Background(), " ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestCreate(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store, &stubSource{})

	book, err := service.Create(context.Background(), CreateInput{
		Title:     "  La Sombra del Viento ",
		Author:    "Carlos Ruiz Zafón",
		ISBN:      "978-84-08-17926-3",
		PageCount: pointer.To(565),
	})
	require.NoError(t, err)

	assert.Equal(t, "La Sombra del Viento", book.Title)
	assert.Equal(t, "la-sombra-del-viento", book.Slug)
	assert.Equal(t, "9788408179263", pointer.Val(book.ISBN13))
	assert.Nil(t, book.ISBN10)
	assert.Equal(t, SourceManual, book.Source)
	assert.Equal(t, 1, store.count())
}

func TestCreate_Validation(t *testing.T) {
	service := newTestService(newMemoryStore(), &stubSource{})

	_, err := service.Create(context.Background(), CreateInput{
		Title:     "",
		ISBN:      "12345",
		PageCount: pointer.To(-1),
		CoverURL:  "ftp://example.com/cover.jpg",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"title", "page_count", "isbn", "cover_url"}, fields)
}

func TestGet_IncludesRatings(t *testing.T) {
	service := newTestService(newMemoryStore(seededBooks()...), &stubSource{})

	details, err := service.Get(context.Background(), duneID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", details.Title)
	require.NotNil(t, details.Ratings)
	assert.Equal(t, 4.5, details.Ratings.AverageRating)

	_, err = service.Get(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
