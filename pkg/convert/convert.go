// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert turns query-string values into numbers without surfacing parse
errors. Handlers use it for optional, lenient parameters such as "limit" or "year".

Use strconv directly when a malformed value must be rejected.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses str as an int, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToInt parses str as an int, returning 0 when empty or malformed.
func ToInt(str string) int {
	return ToIntD(str, 0)
}

// Clamp bounds v to [low, high].
func Clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
