package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCreatesStateFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig()
	cfg.DatabaseFile = filepath.Join(dir, "profiles.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.SigningKeyFile = filepath.Join(dir, "signing.pem")
	cfg.LogFormat = "text"

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	_, err = os.Stat(cfg.DatabaseFile)
	require.NoError(t, err)
	_, err = os.Stat(cfg.SigningKeyFile)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The pepper is created lazily on first hash.
	_, err = application.accountService.CreateUser(t.Context(), "u", "u@example.com", "pw")
	require.NoError(t, err)
	_, err = os.Stat(cfg.PepperFile)
	require.NoError(t, err)
}
