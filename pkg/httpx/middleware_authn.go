package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

// TokenVerifier is satisfied by *jwtx.Verifier.
type TokenVerifier interface {
	Verify(token string) (jwtx.Claims, error)
}

// AuthnMiddleware requires a valid bearer token and stores its subject and
// claims in the request context.
func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")))
			if err != nil {
				slogx.FromContext(r.Context()).Warn("bearer token rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx := context.WithValue(r.Context(), CtxKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			ctx = slogx.With(ctx, "account_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PermissionFunc reports whether subject holds perm.
type PermissionFunc func(ctx context.Context, subject, perm string) (bool, error)

// RequirePermission must run after AuthnMiddleware.
func RequirePermission(perm string, check PermissionFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, ok := SubjectFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing subject")
				return
			}

			allowed, err := check(r.Context(), sub, perm)
			if err != nil {
				slogx.FromContext(r.Context()).Error("permission check failed",
					"subject", sub, "perm", perm, "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "permission check failed")
				return
			}
			if !allowed {
				WriteError(w, http.StatusForbidden, "access_denied", "missing permission "+perm)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750 style error for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
