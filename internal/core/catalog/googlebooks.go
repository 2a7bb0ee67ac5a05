// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/readlog/internal/platform/apperr"
)

const (
	upstreamName = "Book catalog"
	userAgent    = "readlog/1.0"

	// maxResponseBytes caps the body read from the catalog.
	maxResponseBytes = 2 << 20

	// maxSearchResults is the largest page Google Books will return.
	maxSearchResults = 40
)

// GoogleBooks is a client for the Google Books v1 volumes API.
type GoogleBooks struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGoogleBooks constructs a client. An empty apiKey uses the anonymous quota.
func NewGoogleBooks(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *GoogleBooks {
	return &GoogleBooks{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
		logger: logger,
	}
}

// # Wire Format

type volumeList struct {
	TotalItems int              `json:"totalItems"`
	Items      []volumeResource `json:"items"`
}

type volumeResource struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Subtitle            string   `json:"subtitle"`
		Authors             []string `json:"authors"`
		Description         string   `json:"description"`
		PublishedDate       string   `json:"publishedDate"`
		PageCount           int      `json:"pageCount"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks struct {
			SmallThumbnail string `json:"smallThumbnail"`
			Thumbnail      string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

func (resource volumeResource) toVolume() Volume {
	info := resource.VolumeInfo

	volume := Volume{
		ExternalID:  resource.ID,
		Title:       strings.TrimSpace(info.Title),
		Authors:     info.Authors,
		Description: info.Description,
	}
	if info.Subtitle != "" {
		volume.Title += ": " + strings.TrimSpace(info.Subtitle)
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		volume.PageCount = &pages
	}
	if year, err := strconv.Atoi(firstN(info.PublishedDate, 4)); err == nil && len(info.PublishedDate) >= 4 {
		volume.PublishedYear = &year
	}

	for _, identifier := range info.IndustryIdentifiers {
		switch identifier.Type {
		case "ISBN_13":
			volume.ISBN13 = identifier.Identifier
		case "ISBN_10":
			volume.ISBN10 = identifier.Identifier
		}
	}

	cover := info.ImageLinks.Thumbnail
	if cover == "" {
		cover = info.ImageLinks.SmallThumbnail
	}
	volume.CoverURL = strings.Replace(cover, "http://", "https://", 1)

	return volume
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// # Operations

// Search returns up to limit volumes matching query.
func (client *GoogleBooks) Search(ctx context.Context, query string, limit int) ([]Volume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.ValidationError("Search query cannot be empty")
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("printType", "books")

	var list volumeList
	if err := client.get(ctx, "/volumes", params, &list); err != nil {
		return nil, err
	}

	volumes := make([]Volume, 0, len(list.Items))
	for _, item := range list.Items {
		volume := item.toVolume()
		if volume.ExternalID == "" || volume.Title == "" {
			continue
		}
		volumes = append(volumes, volume)
	}

	client.logger.Debug("catalog_search_completed",
		slog.String("query", query),
		slog.Int("results", len(volumes)),
	)
	return volumes, nil
}

// Volume fetches one volume by its external ID.
func (client *GoogleBooks) Volume(ctx context.Context, externalID string) (*Volume, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, apperr.ValidationError("External ID cannot be empty")
	}

	var resource volumeResource
	if err := client.get(ctx, "/volumes/"+url.PathEscape(externalID), url.Values{}, &resource); err != nil {
		return nil, err
	}

	volume := resource.toVolume()
	return &volume, nil
}

// get performs a GET and decodes a JSON body into target.
//
// 404 maps to NotFound; any other non-2xx status or transport failure maps to BadGateway.
func (client *GoogleBooks) get(ctx context.Context, path string, params url.Values, target any) error {
	if client.apiKey != "" {
		params.Set("key", client.apiKey)
	}

	endpoint := client.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperr.Internal(fmt.Errorf("catalog: build request: %w", err))
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.BadGateway(upstreamName, fmt.Errorf("catalog: GET %s: %w", path, err))
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return apperr.BadGateway(upstreamName, fmt.Errorf("catalog: read body: %w", err))
	}

	switch {
	case response.StatusCode == http.StatusNotFound:
		return apperr.NotFound("Catalog volume")
	case response.StatusCode < 200 || response.StatusCode > 299:
		client.logger.Warn("catalog_upstream_error",
			slog.String("path", path),
			slog.Int("status", response.StatusCode),
		)
		return apperr.BadGateway(upstreamName, fmt.Errorf("catalog: GET %s: status %d", path, response.StatusCode))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return apperr.BadGateway(upstreamName, fmt.Errorf("catalog: decode %s: %w", path, err))
	}
	return nil
}
