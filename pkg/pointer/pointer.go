// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds generic helpers for optional values.

Optional request fields and nullable columns (rating, page_count, started_at) are
modelled as pointers throughout Readlog; these helpers keep that readable.
*/
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value for nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Or returns p when it is non-nil, otherwise fallback.
func Or[T any](p, fallback *T) *T {
	if p != nil {
		return p
	}
	return fallback
}

// Equal reports whether both pointers are nil or both point to equal values.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
