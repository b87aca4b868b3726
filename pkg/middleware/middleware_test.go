package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/squad-arena/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	var got string
	h := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserID(r.Context())
	}))

	t.Run("Header Present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/matches/m1/join", nil)
		req.Header.Set(UserHeader, " user-1 ")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "user-1", got)
	})

	t.Run("Header Missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/matches/m1/join", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Empty(t, got)
	})
}

func TestIPRateLimiter(t *testing.T) {
	t.Run("Rejects Over Burst", func(t *testing.T) {
		limiter := NewIPRateLimiter(1, 2)
		h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		codes := make([]int, 3)
		for i := range codes {
			req := httptest.NewRequest(http.MethodGet, "/matches", nil)
			req.RemoteAddr = "10.0.0.1:5555"
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			codes[i] = rr.Code
			if rr.Code == http.StatusTooManyRequests {
				var body api.Error
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, api.CodeRateLimited, body.Code)
			}
		}
		assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

		other := httptest.NewRequest(http.MethodGet, "/matches", nil)
		other.RemoteAddr = "10.0.0.2:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, other)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Evicts Idle Visitors", func(t *testing.T) {
		limiter := NewIPRateLimiter(1, 1)
		current := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return current }

		limiter.Limiter("10.0.0.1")
		current = current.Add(visitorTTL + time.Second)
		limiter.Limiter("10.0.0.2")
		limiter.evict()

		assert.Len(t, limiter.visitors, 1)
		assert.Contains(t, limiter.visitors, "10.0.0.2")
	})
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Identity(NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})))

	req := httptest.NewRequest(http.MethodGet, "/wallets/user-1", nil)
	req.Header.Set(UserHeader, "user-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server error", entry["msg"])
	request := entry["request"].(map[string]interface{})
	assert.Equal(t, "user-1", request["user_id"])
	assert.Equal(t, "/wallets/user-1", request["path"])
}
