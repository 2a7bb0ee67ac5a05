// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"math"
)

// RatingLister is the part of [Store] the aggregator reads.
type RatingLister interface {
	ListRatingsForBook(context context.Context, bookID string) ([]UserRating, error)
}

// Aggregator recomputes a book's rating summary from every stored rating.
//
// Nothing is cached or maintained incrementally: each call re-reads the ratings,
// so edits and removals are always reflected.
type Aggregator struct {
	ratings RatingLister
}

// NewAggregator constructs an [Aggregator].
func NewAggregator(ratings RatingLister) *Aggregator {
	return &Aggregator{ratings: ratings}
}

// ComputeAggregate returns the rating summary for bookID.
func (aggregator *Aggregator) ComputeAggregate(context context.Context, bookID string) (*Aggregate, error) {
	ratings, err := aggregator.ratings.ListRatingsForBook(context, bookID)
	if err != nil {
		return nil, err
	}

	aggregate := Summarize(ratings)
	aggregate.BookID = bookID
	return &aggregate, nil
}

// Summarize folds ratings into an [Aggregate]. The average is rounded to one
// decimal and is 0 when there are no ratings. Values outside [1,5] are ignored.
func Summarize(ratings []UserRating) Aggregate {
	var aggregate Aggregate
	sum := 0

	for _, rating := range ratings {
		if rating.Rating < MinRating || rating.Rating > MaxRating {
			continue
		}
		sum += rating.Rating
		aggregate.RatingCount++
		aggregate.Distribution[rating.Rating-1]++
	}

	if aggregate.RatingCount > 0 {
		mean := float64(sum) / float64(aggregate.RatingCount)
		aggregate.AverageRating = math.Round(mean*10) / 10
	}
	return aggregate
}
