// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table.
type CatalogBookTable struct {
	Table         string
	ID            string
	Slug          string
	Title         string
	Author        string
	Description   string
	ISBN13        string
	ISBN10        string
	PageCount     string
	CoverURL      string
	PublishedYear string
	Source        string
	ExternalID    string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book.
var CatalogBook = CatalogBookTable{
	Table:         "catalog.book",
	ID:            "id",
	Slug:          "slug",
	Title:         "title",
	Author:        "author",
	Description:   "description",
	ISBN13:        "isbn13",
	ISBN10:        "isbn10",
	PageCount:     "pagecount",
	CoverURL:      "coverurl",
	PublishedYear: "publishedyear",
	Source:        "source",
	ExternalID:    "externalid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns the selectable columns in scan order.
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Author, t.Description, t.ISBN13, t.ISBN10,
		t.PageCount, t.CoverURL, t.PublishedYear, t.Source, t.ExternalID,
		t.CreatedAt, t.UpdatedAt,
	}
}
