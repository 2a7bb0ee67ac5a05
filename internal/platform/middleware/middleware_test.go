// Copyright (c) 2026 Readlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/readlog/internal/platform/ctxutil"
	"github.com/taibuivan/readlog/internal/platform/middleware"
	"github.com/taibuivan/readlog/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

type corsConfig struct {
	dev    bool
	suffix string
}

func (c corsConfig) IsDevelopment() bool  { return c.dev }
func (c corsConfig) OriginSuffix() string { return c.suffix }

type stubVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (s stubVerifier) VerifyToken(string) (*sec.AuthClaims, error) { return s.claims, s.err }

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	handler := middleware.RateLimit(middleware.NewIPRateLimiter(0.0001, 2))(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5555"
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestThrottle_RedisFixedWindow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := middleware.NewRedisWindowLimiter(client, "test:auth:", 2, time.Minute, slog.Default())
	require.NoError(t, err)

	handler := middleware.Throttle(limiter)(okHandler)
	serve := func() *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/login", nil)
		request.Header.Set("X-Real-IP", "203.0.113.9")
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, serve().Code)
	assert.Equal(t, http.StatusOK, serve().Code)

	blocked := serve()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get("Retry-After"))
}

func TestThrottle_FailsClosed(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := middleware.NewRedisWindowLimiter(client, "test:auth:", 5, time.Minute, slog.Default())
	require.NoError(t, err)
	server.Close()

	recorder := httptest.NewRecorder()
	middleware.Throttle(limiter)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestNewRedisWindowLimiter_RejectsZeroLimit(t *testing.T) {
	_, err := middleware.NewRedisWindowLimiter(nil, "p:", 0, time.Minute, slog.Default())
	assert.Error(t, err)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development_allows_any", corsConfig{dev: true, suffix: "readlog.app"}, "http://localhost:5173", true},
		{"exact_host", corsConfig{suffix: "readlog.app"}, "https://readlog.app", true},
		{"subdomain", corsConfig{suffix: "readlog.app"}, "https://www.readlog.app", true},
		{"lookalike_host", corsConfig{suffix: "readlog.app"}, "https://evilreadlog.app", false},
		{"foreign_host", corsConfig{suffix: "readlog.app"}, "https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://readlog.app")
	recorder := httptest.NewRecorder()

	middleware.CORS(corsConfig{suffix: "readlog.app"})(okHandler).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestAuthenticate(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "u-1", Username: "reader"}

	var seenUser string
	capture := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenUser = ctxutil.UserID(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous_passes_through", func(t *testing.T) {
		seenUser = "unset"
		recorder := httptest.NewRecorder()
		middleware.Authenticate(stubVerifier{claims: claims})(capture).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, seenUser)
	})

	t.Run("valid_bearer", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer token")
		recorder := httptest.NewRecorder()
		middleware.Authenticate(stubVerifier{claims: claims})(capture).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "u-1", seenUser)
	})

	t.Run("invalid_token", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer token")
		recorder := httptest.NewRecorder()
		middleware.Authenticate(stubVerifier{err: assert.AnError})(capture).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("wrong_scheme", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Basic abc")
		recorder := httptest.NewRecorder()
		middleware.Authenticate(stubVerifier{claims: claims})(capture).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RequireAuth(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u-1"}))
	recorder = httptest.NewRecorder()
	middleware.RequireAuth(okHandler).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "203.0.113.5")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))
}
