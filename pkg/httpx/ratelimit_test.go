package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("uses RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1:12345")))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := requestFrom("192.168.1.1:12345")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	extract := httpx.JSONFieldKeyExtractor("email")

	t.Run("reads and restores body", func(t *testing.T) {
		body := `{"email":" Alice@Example.COM ","password":"pw"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "alice@example.com", extract(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
	})

	t.Run("empty on missing field or bad JSON", func(t *testing.T) {
		require.Empty(t, extract(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"pw"}`))))
		require.Empty(t, extract(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))))
		require.Empty(t, extract(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":42}`))))
	})
}

func TestCompositeKeyExtractorSkipsEmpty(t *testing.T) {
	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.SubjectKeyExtractor)
	require.Equal(t, "192.168.1.1", extract(requestFrom("192.168.1.1:1")))
}

func TestRateLimit(t *testing.T) {
	t.Run("blocks over the limit with headers", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
		h := httpx.RateLimitByIP(cfg)(okHandler)

		for i := range 2 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:12345"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

		// A different client still gets through.
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.2:12345"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("separate buckets per email", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitByIPAndJSONField(cfg, "email")(okHandler)

		post := func(email string) int {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+email+`"}`))
			req.RemoteAddr = "10.0.0.1:1"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, post("alice@example.com"))
		require.Equal(t, http.StatusTooManyRequests, post("ALICE@example.com"))
		require.Equal(t, http.StatusOK, post("bob@example.com"))
	})

	t.Run("no key lets the request through", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimit(cfg, func(*http.Request) string { return "" })(okHandler)
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("1.1.1.1:1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	cfg := httpx.ParseRateLimitFromEnv("TEST", httpx.StrictLimit)
	require.Equal(t, 50, cfg.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.Burst)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	httpx.Chain(okHandler, mark("a"), mark("b"), mark("c")).ServeHTTP(httptest.NewRecorder(), requestFrom("1.1.1.1:1"))
	require.Equal(t, []string{"a", "b", "c"}, order)
}
