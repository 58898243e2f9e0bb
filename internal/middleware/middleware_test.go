package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

type fakeSessions map[string]string

func (f fakeSessions) Validate(_ context.Context, token string) (string, bool, error) {
	if token == "broken" {
		return "", false, errors.New("redis down")
	}
	u, ok := f[token]
	return u, ok, nil
}

func TestRequireAdmin(t *testing.T) {
	var seen, seenToken string
	h := RequireAdmin(fakeSessions{"tok-1": "admin1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, seenToken = AdminFrom(r.Context()), TokenFrom(r.Context())
	}))

	tests := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Basic tok-1", http.StatusUnauthorized},
		{"Bearer broken", http.StatusServiceUnavailable},
		{"bearer tok-1", http.StatusOK},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/respuestas", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		rec := serve(h, r)
		assert.Equal(t, tt.status, rec.Code, tt.header)
	}
	assert.Equal(t, "admin1", seen)
	assert.Equal(t, "tok-1", seenToken)
}

func TestIPLimiter(t *testing.T) {
	l := newIPLimiter(rate.Every(time.Minute), 2, time.Hour)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.True(t, l.allow("b"), "keys are independent")

	now = now.Add(time.Minute)
	assert.True(t, l.allow("a"))

	now = now.Add(2 * time.Hour)
	l.allow("c")
	assert.NotContains(t, l.entries, "a", "idle entries are swept")
}

func TestAuthRateLimit(t *testing.T) {
	h := AuthRateLimit()(noContent)
	codes := make([]int, 0, authRateLimitBurst+1)
	for i := 0; i <= authRateLimitBurst; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		codes = append(codes, serve(h, r).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[authRateLimitBurst])
	for _, c := range codes[:authRateLimitBurst] {
		assert.Equal(t, http.StatusNoContent, c)
	}
}

func TestSubmissionRateLimitBlocksFlood(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	h := SubmissionRateLimit(rdb)(noContent)

	post := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/respuestas", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		return serve(h, r)
	}

	for i := 0; i < SubmissionMaxRequests; i++ {
		require.Equal(t, http.StatusNoContent, post().Code, "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, post().Code)
	assert.True(t, mr.Exists(BlockedIPKeyPrefix+"198.51.100.7"))

	// the block outlives the counting window
	mr.FastForward(SubmissionWindow + time.Second)
	assert.Equal(t, http.StatusTooManyRequests, post().Code)

	mr.FastForward(BlockedIPDuration)
	assert.Equal(t, http.StatusNoContent, post().Code)
}

func TestSubmissionRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/respuestas", nil)
	assert.Equal(t, http.StatusNoContent, serve(SubmissionRateLimit(rdb)(noContent), r).Code)
}

func TestHostCheck(t *testing.T) {
	h := HostCheck("api.mercado.pe")(noContent)

	r := httptest.NewRequest(http.MethodGet, "http://api.mercado.pe:443/health", nil)
	assert.Equal(t, http.StatusNoContent, serve(h, r).Code)

	r = httptest.NewRequest(http.MethodGet, "http://evil.example/health", nil)
	assert.Equal(t, http.StatusForbidden, serve(h, r).Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := serve(SecurityHeaders(noContent), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get(headerXContentTypeOptions))
	assert.Equal(t, "DENY", rec.Header().Get(headerXFrameOptions))
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"https://encuesta.mercado.pe"})(noContent)

	r := httptest.NewRequest(http.MethodOptions, "/api/respuestas", nil)
	r.Header.Set("Origin", "https://encuesta.mercado.pe")
	r.Header.Set("Access-Control-Request-Method", "DELETE")
	rec := serve(h, r)
	assert.Equal(t, "https://encuesta.mercado.pe", rec.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, "/api/respuestas", nil)
	r.Header.Set("Origin", "https://otro.example")
	rec = serve(h, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubmissionRateLimitKeepsWindowFixed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	h := SubmissionRateLimit(rdb)(noContent)
	key := RateLimitKeyPrefix + "198.51.100.7"

	post := func() int {
		r := httptest.NewRequest(http.MethodPost, "/api/respuestas", nil)
		r.RemoteAddr = "198.51.100.7:4000"
		return serve(h, r).Code
	}

	// a counter that lost its TTL gets one back on the next request
	mr.Set(key, "5")
	require.Equal(t, http.StatusNoContent, post())
	assert.Equal(t, SubmissionWindow, mr.TTL(key))

	// later requests do not push the window out
	mr.FastForward(4 * time.Minute)
	require.Equal(t, http.StatusNoContent, post())
	assert.Equal(t, SubmissionWindow-4*time.Minute, mr.TTL(key))

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}
