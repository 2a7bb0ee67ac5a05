// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import "context"

// Store reads the aggregates behind a [Summary].
type Store interface {

	/*
		Totals aggregates the reader's records and notes.

		Parameters:
		  - userID: the reader
		  - year: calendar year for FinishedByMonth (finished_at, UTC date)

		Returns:
		  - *Totals: Zero-valued when the library is empty
		  - error: Database retrieval failures
	*/
	Totals(context context.Context, userID string, year int) (*Totals, error)
}
