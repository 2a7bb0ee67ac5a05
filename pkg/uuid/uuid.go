// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered UUIDv7 identifiers used as primary keys for
accounts, sessions, books and notes.

Version 7 values sort by creation time, which keeps PostgreSQL B-tree inserts
append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string. It panics only if the system entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
