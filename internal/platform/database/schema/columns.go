// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "strings"

// List joins columns for a SELECT list, optionally qualifying each with alias.
//
//	schema.List("b", "id", "title") // "b.id, b.title"
func List(alias string, columns ...string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
