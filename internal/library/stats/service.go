// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"math"
	"time"

	"github.com/taibuivan/readlog/internal/platform/validate"
)

// Accepted range for the year parameter.
const (
	MinYear = 1900
	MaxYear = 9999
)

// Service computes reader statistics.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a stats [Service].
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Summary returns the reader's statistics. A zero year means the current UTC year.
func (service *Service) Summary(context context.Context, userID string, year int) (*Summary, error) {
	if year == 0 {
		year = service.now().UTC().Year()
	}
	if year < MinYear || year > MaxYear {
		return nil, validate.FieldErr("year", "Must be a calendar year")
	}

	totals, err := service.store.Totals(context, userID, year)
	if err != nil {
		return nil, err
	}
	return summarize(year, totals), nil
}

func summarize(year int, totals *Totals) *Summary {
	summary := &Summary{
		Year:            year,
		TotalBooks:      totals.ByStatus.WantToRead + totals.ByStatus.Reading + totals.ByStatus.Read,
		ByStatus:        totals.ByStatus,
		PagesRead:       totals.PagesRead,
		RatingsGiven:    totals.RatingsGiven,
		FinishedByMonth: totals.FinishedByMonth,
		NotesCount:      totals.NotesCount,
	}

	for _, count := range totals.FinishedByMonth {
		summary.FinishedInYear += count
	}
	if totals.RatingsGiven > 0 {
		mean := float64(totals.RatingSum) / float64(totals.RatingsGiven)
		summary.AverageRatingGiven = math.Round(mean*10) / 10
	}
	return summary
}
