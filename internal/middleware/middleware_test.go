// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/i18n"
	"github.com/olegiv/ocms-content/internal/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, testutil.TestLoggerSilent())
	h := rl.Middleware(okHandler())

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
	assert.Equal(t, 2, rl.cache.size())
}

func TestRateLimiterResponseBody(t *testing.T) {
	h := NewRateLimiter(0.001, 1, testutil.TestLoggerSilent()).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.9"}, "192.0.2.1:1", "203.0.113.9"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"}, "192.0.2.1:1", "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestBackendUser(t *testing.T) {
	catalog, err := i18n.New(nil)
	require.NoError(t, err)

	var got backend.User
	h := BackendUser(catalog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = backend.UserFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		headers  map[string]string
		wantID   string
		wantLang string
	}{
		{"anonymous", nil, backend.SystemUserID, "en"},
		{"named user", map[string]string{HeaderBackendUser: "editor"}, "editor", "en"},
		{"accept language", map[string]string{HeaderBackendUser: "editor", "Accept-Language": "de-AT,de;q=0.9"}, "editor", "de"},
		{"explicit language wins", map[string]string{HeaderUILanguage: "ru", "Accept-Language": "de"}, backend.SystemUserID, "ru"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantLang, got.UILanguage)
		})
	}
}
