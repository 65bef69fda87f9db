package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP creates an account from a JSON profilesdk.SignupRequest.
//
//	@Summary		Sign up
//	@Description	Creates an account. The email is stored lowercased and must be unique regardless of case.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		profilesdk.SignupRequest	true	"Account details"
//	@Success		201		{object}	profilesdk.AccountResponse	"Created account"
//	@Failure		400		{object}	httpx.ErrorResponse			"Malformed body or missing required fields"
//	@Failure		409		{object}	httpx.ErrorResponse			"Email already registered"
//	@Failure		429		{object}	httpx.ErrorResponse			"Rate limited"
//	@Router			/v1/accounts [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	var req profilesdk.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, profilesdk.ErrorCodeInvalidRequest, "Request body must be valid JSON")
		return
	}

	if details := missingSignupFields(req.Fields()); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	acc, err := h.AccountService.CreateUser(
		r.Context(),
		strings.TrimSpace(req.Username),
		req.Email,
		req.Password,
		service.WithName(strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)),
	)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidationError(w, map[string]string{verr.Field: verr.Reason})
		case errors.Is(err, store.ErrAlreadyExists):
			httpx.WriteError(w, http.StatusConflict, profilesdk.ErrorCodeAlreadyExists,
				"An account with this email already exists")
		default:
			l.Error("signup failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, profilesdk.ErrorCodeServerError,
				"An internal error occurred")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccountResponse(acc))
}

// missingSignupFields lists every required signup field left blank.
func missingSignupFields(fields map[string]string) map[string]string {
	required := append([]string{domain.AccountIdentity.LoginField}, domain.AccountIdentity.RequiredSignupFields...)

	details := make(map[string]string)
	for _, name := range required {
		if strings.TrimSpace(fields[name]) == "" {
			details[name] = "required"
		}
	}
	return details
}

func writeValidationError(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
		Error:            profilesdk.ErrorCodeValidation,
		ErrorDescription: "validation failed for some fields",
		Details:          details,
	})
}

type MeHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP returns the account behind the bearer token.
//
//	@Summary		Current account
//	@Description	Returns the account the bearer token was issued to.
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	profilesdk.AccountResponse	"Account"
//	@Failure		401	{object}	httpx.ErrorResponse			"Missing or invalid bearer token"
//	@Failure		403	{object}	httpx.ErrorResponse			"Account is inactive"
//	@Failure		404	{object}	httpx.ErrorResponse			"Account no longer exists"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	sub, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, profilesdk.ErrorCodeInvalidToken, "missing subject")
		return
	}

	acc, err := h.AccountService.GetByID(ctx, sub)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, profilesdk.ErrorCodeNotFound, "account no longer exists")
		return
	case err != nil:
		l.Error("failed to load account", "account_id", sub, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, profilesdk.ErrorCodeServerError, "An internal error occurred")
		return
	}

	if !acc.Active() {
		httpx.WriteError(w, http.StatusForbidden, profilesdk.ErrorCodeAccessDenied, "account is inactive")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(acc))
}

type ListAccountsHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP lists accounts ordered by join date. Query parameters limit
// (default 50, max 200) and offset page through the results.
//
//	@Summary		List accounts
//	@Description	Lists accounts ordered by join date. Requires an active admin account.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int								false	"Page size (max 200)"	default(50)
//	@Param			offset	query		int								false	"Number of accounts to skip"	default(0)
//	@Success		200		{object}	profilesdk.ListAccountsResponse	"One page of accounts"
//	@Failure		400		{object}	httpx.ErrorResponse				"Invalid paging parameters"
//	@Failure		401		{object}	httpx.ErrorResponse				"Missing or invalid bearer token"
//	@Failure		403		{object}	httpx.ErrorResponse				"Account is not an admin"
//	@Router			/v1/accounts [get].
func (h *ListAccountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil || limit <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, profilesdk.ErrorCodeInvalidRequest, "limit must be a positive integer")
		return
	}
	limit = min(limit, maxPageSize)

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		httpx.WriteError(w, http.StatusBadRequest, profilesdk.ErrorCodeInvalidRequest, "offset must be a non-negative integer")
		return
	}

	accounts, total, err := h.AccountService.List(ctx, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accounts", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, profilesdk.ErrorCodeServerError, "An internal error occurred")
		return
	}

	resp := profilesdk.ListAccountsResponse{
		Accounts: make([]profilesdk.AccountResponse, 0, len(accounts)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for _, acc := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(acc))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func toAccountResponse(a domain.Account) profilesdk.AccountResponse {
	resp := profilesdk.AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		Username:    a.Username,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		FullName:    strings.TrimSpace(a.FullName()),
		IsActive:    a.IsActive,
		IsStaff:     a.IsStaff,
		IsAdmin:     a.IsAdmin,
		IsSuperuser: a.IsSuperuser,
		DateJoined:  a.DateJoined.UTC().Format(time.RFC3339),
	}
	if a.LastLogin != nil {
		s := a.LastLogin.UTC().Format(time.RFC3339)
		resp.LastLogin = &s
	}
	return resp
}
