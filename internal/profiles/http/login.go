package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

type LoginHandler struct {
	AccountService *service.AccountService
	Signer         *jwtx.Signer
	Issuer         string
	TTL            time.Duration
}

// ServeHTTP exchanges an email and password for a signed session token.
//
//	@Summary		Log in
//	@Description	Exchanges an email and password for an EdDSA-signed session token.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	profilesdk.TokenResponse	"Session token"
//	@Failure		400		{object}	httpx.ErrorResponse			"Malformed body"
//	@Failure		401		{object}	httpx.ErrorResponse			"Invalid email or password"
//	@Failure		429		{object}	httpx.ErrorResponse			"Rate limited"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req profilesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, profilesdk.ErrorCodeInvalidRequest, "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, profilesdk.ErrorCodeInvalidRequest, "email and password are required")
		return
	}

	acc, err := h.AccountService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, profilesdk.ErrorCodeInvalidCredentials, "invalid email or password")
		default:
			l.Error("login failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, profilesdk.ErrorCodeServerError, "An internal error occurred")
		}
		return
	}

	ttl := h.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(acc.ID, acc.Email, acc.IsStaff, h.Issuer, ttl, time.Now())
	token, err := h.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign session token", "account_id", acc.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, profilesdk.ErrorCodeServerError, "An internal error occurred")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profilesdk.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}
