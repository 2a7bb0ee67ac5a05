// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats summarizes a reader's library: shelf sizes, pages read, ratings
given and books finished per month of a calendar year.
*/
package stats

// StatusCounts is the number of records on each shelf.
type StatusCounts struct {
	WantToRead int `json:"want_to_read"`
	Reading    int `json:"reading"`
	Read       int `json:"read"`
}

// Totals is the raw aggregation returned by the [Store].
type Totals struct {
	ByStatus        StatusCounts
	PagesRead       int
	RatingsGiven    int
	RatingSum       int
	FinishedByMonth [12]int
	NotesCount      int
}

// Summary is the reader's statistics for one year.
type Summary struct {
	Year               int          `json:"year"`
	TotalBooks         int          `json:"total_books"`
	ByStatus           StatusCounts `json:"by_status"`
	PagesRead          int          `json:"pages_read"`
	RatingsGiven       int          `json:"ratings_given"`
	AverageRatingGiven float64      `json:"average_rating_given"`
	FinishedInYear     int          `json:"finished_in_year"`
	FinishedByMonth    [12]int      `json:"finished_by_month"`
	NotesCount         int          `json:"notes_count"`
}
