// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/platform/config"
)

func runCLI(t *testing.T, cfg *config.CLIConfig, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(cfg, &out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBooksSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "left hand", request.URL.Query().Get("q"))
		assert.Equal(t, "3", request.URL.Query().Get("maxResults"))
		_, _ = io.WriteString(writer, `{"totalItems": 1, "items": [{
			"id": "zyTCAlFPjgYC",
			"volumeInfo": {
				"title": "The Left Hand of Darkness",
				"authors": ["Ursula K. Le Guin"],
				"pageCount": 304,
				"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780441478125"}]
			}
		}]}`)
	}))
	t.Cleanup(server.Close)

	cfg := &config.CLIConfig{CatalogBaseURL: server.URL, CatalogTimeout: 2 * time.Second}

	out, err := runCLI(t, cfg, "books", "search", "left", "hand", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "1. The Left Hand of Darkness")
	assert.Contains(t, out, "id: zyTCAlFPjgYC")
	assert.Contains(t, out, "by: Ursula K. Le Guin")
	assert.Contains(t, out, "pages: 304")
	assert.Contains(t, out, "isbn: 9780441478125")
}

func TestBooksSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(writer, `{"totalItems": 0}`)
	}))
	t.Cleanup(server.Close)

	out, err := runCLI(t, &config.CLIConfig{CatalogBaseURL: server.URL, CatalogTimeout: time.Second}, "books", "search", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "no results\n", out)
}

func TestDatabaseCommandsRequireURL(t *testing.T) {
	for _, args := range [][]string{
		{"migrate", "up"},
		{"migrate", "down", "2"},
		{"books", "import", "zyTCAlFPjgYC"},
	} {
		_, err := runCLI(t, &config.CLIConfig{}, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	for _, bad := range []string{"0", "-1", "two"} {
		_, err := parseSteps([]string{bad})
		assert.Error(t, err, bad)
	}
}
