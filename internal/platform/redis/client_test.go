// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "github.com/taibuivan/readlog/internal/platform/redis"
)

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := platformredis.NewClient(context.Background(), "redis://"+server.Addr()+"/0", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, platformredis.Ping(context.Background(), client))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := platformredis.NewClient(context.Background(), "not a url", slog.Default())
	assert.Error(t, err)
}
