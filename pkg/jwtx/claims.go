// Package jwtx issues and verifies the EdDSA-signed session tokens handed out
// on login.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a login token when none is configured.
const DefaultSessionTTL = 15 * time.Minute

// Claims identify an account. Subject holds the account id, Email the login
// identifier at the time the token was issued.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Staff bool   `json:"staff,omitempty"`
}

// NewSessionClaims builds claims valid from now until now+ttl.
func NewSessionClaims(subject, email string, staff bool, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Email: email,
		Staff: staff,
	}
}

func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
