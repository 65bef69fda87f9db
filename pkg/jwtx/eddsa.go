package jwtx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrInvalidKey  = errors.New("jwtx: invalid Ed25519 key")
	ErrNoSignerKey = errors.New("jwtx: signer has no key")
)

// Signer signs session claims with a single Ed25519 key.
type Signer struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSigner loads a PKCS8 PEM Ed25519 private key. The kid is derived from the
// public key so a rotated key file invalidates previously issued tokens.
func NewSigner(pemKey []byte) (*Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("%w: expected PKCS8 PRIVATE KEY block", ErrInvalidKey)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}
	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, ErrInvalidKey
	}
	pub := key.Public().(ed25519.PublicKey)

	sum := sha256.Sum256(pub)
	return &Signer{
		kid: base64.RawURLEncoding.EncodeToString(sum[:8]),
		key: key,
		pub: pub,
	}, nil
}

func (s *Signer) KID() string { return s.kid }

// Ready reports whether the signer holds a usable key pair.
func (s *Signer) Ready() bool {
	return s != nil && len(s.key) == ed25519.PrivateKeySize && len(s.pub) == ed25519.PublicKeySize
}

func (s *Signer) Sign(claims Claims) (string, error) {
	if !s.Ready() {
		return "", ErrNoSignerKey
	}
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Verifier checks tokens produced by a Signer.
type Verifier struct {
	kid    string
	pub    ed25519.PublicKey
	issuer string
	leeway time.Duration
}

// NewVerifier returns a verifier for the signer's public key. An empty issuer
// skips the issuer check.
func NewVerifier(s *Signer, issuer string) *Verifier {
	return &Verifier{kid: s.kid, pub: s.pub, issuer: issuer, leeway: 5 * time.Second}
}

// Verify parses tokenStr and validates signature, kid, expiry and issuer.
func (v *Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != v.kid {
			return nil, ErrUnknownKID
		}
		return v.pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, ErrIssuer
	}
	return *claims, nil
}
