package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/profiles/pkg/cryptox"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
)

// LoadSigner reads the session signing key, generating one on first start.
// Replacing the key file invalidates every outstanding session token.
func LoadSigner(cfg Config, logger *slog.Logger) (*jwtx.Signer, error) {
	pemKey, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	signer, err := jwtx.NewSigner(pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	logger.Info("signing key loaded", "kid", signer.KID(), "path", cfg.SigningKeyFile)
	return signer, nil
}
