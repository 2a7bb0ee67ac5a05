// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds arbitrary Unicode text into lowercase ASCII tokens.
//
// Book slugs ("the-left-hand-of-darkness") and search-cache keys both go
// through [From], so "Cien años" and "cien  ANOS" share one cache entry.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	edgeHyphens     = regexp.MustCompile(`^-+|-+$`)
)

// maxLength bounds slugs so that long subtitles do not produce unwieldy keys.
const maxLength = 120

// From converts s into a hyphen-separated ASCII slug.
//
//  1. NFD-normalize and drop combining marks (é → e).
//  2. Lowercase.
//  3. Replace every run of non [a-z0-9] characters with one hyphen.
//  4. Trim edge hyphens and cap the length.
func From(s string) string {
	folder := transform.Chain(norm.NFD, transform.RemoveFunc(isMark), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), "-")
	result = edgeHyphens.ReplaceAllString(result, "")

	if len(result) > maxLength {
		result = strings.TrimRight(result[:maxLength], "-")
	}
	return result
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
