//go:build e2e

package profiles_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/profiles/pkg/profilesdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	svc := startService(t, relaxedEnv())

	live, err := svc.client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := svc.client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

func TestSignupLoginFlow(t *testing.T) {
	svc := startService(t, relaxedEnv())
	ctx := t.Context()

	acc, err := svc.client.Signup(ctx, profilesdk.SignupRequest{
		Email:     "Alice@Example.COM",
		Username:  "alice",
		Password:  "pw",
		FirstName: "Alice",
		LastName:  "Liddell",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", acc.Email)
	require.Equal(t, "Liddell Alice", acc.FullName)

	_, err = svc.client.Signup(ctx, profilesdk.SignupRequest{Email: "alice@EXAMPLE.com", Username: "alice2", Password: "pw"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.client.Login(ctx, "alice@example.com", "wrong")
	requireStatus(t, err, http.StatusUnauthorized)

	session, err := svc.client.Login(ctx, "ALICE@example.com", "pw")
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, acc.ID, me.ID)
	require.NotNil(t, me.LastLogin)

	_, err = session.ListAccounts(ctx, 10, 0)
	requireStatus(t, err, http.StatusForbidden)
}

func TestSuperuserListsAccounts(t *testing.T) {
	svc := startService(t, relaxedEnv())
	ctx := t.Context()

	out := svc.createSuperuser(t, adminEmail, adminUsername, adminPassword)
	require.Contains(t, out, adminEmail)

	_, err := svc.client.Signup(ctx, profilesdk.SignupRequest{Email: "bob@example.com", Username: "bob", Password: "pw"})
	require.NoError(t, err)

	session, err := svc.client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.IsSuperuser)
	require.True(t, me.IsStaff)
	require.True(t, me.IsAdmin)

	page, err := session.ListAccounts(ctx, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Accounts, 2)
}

func TestSignupValidation(t *testing.T) {
	svc := startService(t, relaxedEnv())

	_, err := svc.client.Signup(t.Context(), profilesdk.SignupRequest{Password: "pw"})
	apiErr := requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, profilesdk.ErrorCodeValidation, apiErr.Code)
	require.Equal(t, "required", apiErr.Details["email"])
	require.Equal(t, "required", apiErr.Details["username"])
}

// TestLoginRateLimit runs with the default limits: five attempts per minute
// per IP and email.
func TestLoginRateLimit(t *testing.T) {
	svc := startService(t, baseEnv())
	ctx := t.Context()

	for i := range 5 {
		_, err := svc.client.Login(ctx, "nobody@example.com", "guess")
		requireStatus(t, err, http.StatusUnauthorized)
		t.Logf("attempt %d rejected with 401", i+1)
	}

	_, err := svc.client.Login(ctx, "nobody@example.com", "guess")
	apiErr := requireStatus(t, err, http.StatusTooManyRequests)
	require.Equal(t, profilesdk.ErrorCodeRateLimited, apiErr.Code)
}
