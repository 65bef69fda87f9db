package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PROFILES_ISSUER", "PROFILES_TOKEN_TTL", "PROFILES_DATABASE_FILE", "PROFILES_PEPPER_FILE",
		"PROFILES_SIGNING_KEY_FILE", "ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "profiles", cfg.Issuer)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, "profiles.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, "signing.pem", cfg.SigningKeyFile)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PROFILES_ISSUER", "https://id.example.com")
	t.Setenv("PROFILES_TOKEN_TTL", "1h")
	t.Setenv("PROFILES_DATABASE_FILE", "/data/profiles.db")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "2")

	cfg := LoadConfig()
	require.Equal(t, "https://id.example.com", cfg.Issuer)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "/data/profiles.db", cfg.DatabaseFile)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 2*time.Minute, cfg.ShutdownGracePeriod)
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("PROFILES_TOKEN_TTL", "soon")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
}
