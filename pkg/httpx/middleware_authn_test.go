package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]string // token -> subject

func (f fakeVerifier) Verify(token string) (jwtx.Claims, error) {
	sub, ok := f[token]
	if !ok {
		return jwtx.Claims{}, errors.New("bad token")
	}
	return jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}, nil
}

func TestAuthnMiddleware(t *testing.T) {
	var seen string
	h := httpx.AuthnMiddleware(fakeVerifier{"good": "acct-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.SubjectFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				require.Equal(t, "acct-1", seen)
			} else {
				require.Empty(t, seen)
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	check := func(_ context.Context, sub, perm string) (bool, error) {
		switch sub {
		case "admin":
			return true, nil
		case "broken":
			return false, errors.New("db down")
		default:
			return false, nil
		}
	}
	h := httpx.Chain(okHandler,
		httpx.AuthnMiddleware(fakeVerifier{"a": "admin", "u": "user", "b": "broken"}),
		httpx.RequirePermission("accounts.view", check),
	)

	for token, code := range map[string]int{"a": http.StatusOK, "u": http.StatusForbidden, "b": http.StatusInternalServerError} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, code, rec.Code, "token %q", token)
	}
}
