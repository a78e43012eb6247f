package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// HS256 signs and verifies tokens with a single shared secret. Access and
// refresh tokens each get their own HS256 instance with a distinct secret,
// so a token of one class can never pass verification as the other.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 creates a symmetric signer/verifier from the given secret.
func NewHS256(secret []byte, issuer string) *HS256 {
	return &HS256{secret: secret, issuer: issuer}
}

func (h *HS256) Alg() string { return "HS256" }

// Sign produces a compact serialized token for the given claims.
func (h *HS256) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(h.secret)
}

// Verify parses and validates a token. All failure modes map to one of the
// package sentinels; callers that must not leak the failing check collapse
// them further.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)

	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	if h.issuer != "" && claims.Issuer != h.issuer {
		return Claims{}, ErrMalformed
	}

	return claims, nil
}
