// Package auth implements signed admin session tokens. Tokens are symmetric
// HS256 JWTs carrying the admin's username and role with a bounded lifetime.
//
// The verification outcome is deliberately three-valued so callers can report
// reason-specific failures: a token is either valid, expired, or malformed
// (bad signature, wrong algorithm, garbage input). There is no server-side
// revocation list; logout is client-side only.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel verification errors. ErrTokenExpired and ErrTokenMalformed are
// distinct so the HTTP layer can answer "Token expired" vs "Invalid token".
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token invalid")
)

// Claims is the decoded payload of a verified admin token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies admin tokens with a shared secret.
type Issuer struct {
	// Secret is the HS256 signing key.
	Secret []byte
	// TTL is the token lifetime (8h per the admin session contract).
	TTL time.Duration
}

// NewIssuer constructs an Issuer for the given secret and lifetime.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{Secret: []byte(secret), TTL: ttl}
}

// Issue returns a signed token encoding {username, role, exp = now + TTL}.
func (i *Issuer) Issue(username, role string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.Secret)
}

// Verify parses and validates a token string.
//
// It returns:
//   - the decoded Claims on success,
//   - ErrTokenExpired when the signature is valid but the token has aged out,
//   - ErrTokenMalformed for any other failure (bad signature, non-HMAC
//     algorithm, truncated input).
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !tok.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// IsSuperadmin reports whether the claims grant superadmin privileges.
func (c *Claims) IsSuperadmin() bool { return c != nil && c.Role == "superadmin" }
