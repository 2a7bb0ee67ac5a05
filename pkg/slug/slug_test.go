// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/readlog/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"The Left Hand of Darkness", "the-left-hand-of-darkness"},
		{"Cien años de soledad", "cien-anos-de-soledad"},
		{"  cien  ANOS de   Soledad!! ", "cien-anos-de-soledad"},
		{"Dune: Part 2", "dune-part-2"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.in))
		})
	}
}

func TestFrom_CapsLength(t *testing.T) {
	got := slug.From(strings.Repeat("ab ", 100))
	assert.LessOrEqual(t, len(got), 120)
	assert.False(t, strings.HasSuffix(got, "-"))
}
