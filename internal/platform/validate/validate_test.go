// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/platform/apperr"
	"github.com/taibuivan/readlog/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field rule.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Dune", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_ISBN accepts hyphenated and bare ISBN-10/13 values.
*/
func TestValidator_ISBN(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"978-0-441-17271-9", true},
		{"9780441172719", true},
		{"0-441-17271-7", true},
		{"044117271x", true},
		{"12345", false},
		{"978044117271A", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := (&validate.Validator{}).ISBN("isbn", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_URL only accepts absolute http(s) URLs.
*/
func TestValidator_URL(t *testing.T) {
	assert.False(t, (&validate.Validator{}).URL("cover_url", "https://covers.example/x.jpg").HasErrors())
	assert.True(t, (&validate.Validator{}).URL("cover_url", "ftp://covers.example/x.jpg").HasErrors())
	assert.True(t, (&validate.Validator{}).URL("cover_url", "/relative.jpg").HasErrors())
}

/*
TestValidator_Chain_Failure accumulates every failing rule.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	err := (&validate.Validator{}).
		Required("username", "").
		Username("username", "bad name!").
		Email("email", "not-an-email").
		Range("rating", 9, 1, 5).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

/*
TestNormalizeISBN strips separators and upper-cases the check digit.
*/
func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "044117271X", validate.NormalizeISBN(" 0-441-17271-x "))
}
