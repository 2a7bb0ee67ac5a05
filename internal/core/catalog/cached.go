// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/readlog/internal/platform/constants"
	"github.com/taibuivan/readlog/pkg/slug"
)

// CachedSource is a read-through cache in front of a [Source].
//
// Identical concurrent lookups share one upstream call. Cache failures are
// logged and the call falls through to the upstream source.
type CachedSource struct {
	source Source
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedSource wraps source. ttl applies to both search results and volumes.
func NewCachedSource(source Source, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// SearchKey derives the cache key for a query. Queries that differ only in
// case, accents or punctuation share a key. An empty result means "do not cache".
func SearchKey(query string, limit int) string {
	normalized := slug.From(query)
	if normalized == "" {
		return ""
	}
	return fmt.Sprintf("%s%s:%d", constants.RedisPrefixCatalogSearch, normalized, limit)
}

// Search implements [Source].
func (cached *CachedSource) Search(ctx context.Context, query string, limit int) ([]Volume, error) {
	key := SearchKey(query, limit)
	if key == "" {
		return cached.source.Search(ctx, query, limit)
	}

	var volumes []Volume
	if cached.lookup(ctx, key, &volumes) {
		return volumes, nil
	}

	value, err, _ := cached.group.Do(key, func() (any, error) {
		result, err := cached.source.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		cached.store(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]Volume), nil
}

// Volume implements [Source].
func (cached *CachedSource) Volume(ctx context.Context, externalID string) (*Volume, error) {
	key := constants.RedisPrefixCatalogVolume + externalID

	var volume Volume
	if cached.lookup(ctx, key, &volume) {
		return &volume, nil
	}

	value, err, _ := cached.group.Do(key, func() (any, error) {
		result, err := cached.source.Volume(ctx, externalID)
		if err != nil {
			return nil, err
		}
		cached.store(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Volume), nil
}

// lookup decodes a cached payload into target and reports a hit.
func (cached *CachedSource) lookup(ctx context.Context, key string, target any) bool {
	payload, ok, err := cached.cache.Get(ctx, key)
	if err != nil {
		cached.logger.Warn("catalog_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, target); err != nil {
		cached.logger.Warn("catalog_cache_corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}
	cached.logger.Debug("catalog_cache_hit", slog.String("key", key))
	return true
}

func (cached *CachedSource) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		cached.logger.Warn("catalog_cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := cached.cache.Set(ctx, key, payload, cached.ttl); err != nil {
		cached.logger.Warn("catalog_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
