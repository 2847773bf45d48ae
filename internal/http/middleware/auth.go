// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication for the admin surface.
// RequireAuth validates the Authorization header, verifies the signed token,
// and stashes the decoded claims in the Gin context so handlers can read the
// caller's identity and role. RequireRole layers a role check on top for
// superadmin-only routes.
//
// Error responses follow the service-wide {"error": "..."} envelope with
// three distinguishable 401 messages: "Missing token" when no credential was
// presented, "Token expired" when the credential was valid once, and
// "Invalid token" for everything else (bad signature, malformed, wrong
// scheme). The split lets clients decide between re-login and repair.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/confessly/go-confessly-backend/internal/auth"
)

const (
	// claimsKey is the Gin context key under which verified claims are stored.
	claimsKey = "adminClaims"
)

// ClaimsFrom returns the verified token claims stored by RequireAuth.
// The second return value reports presence; handlers behind RequireAuth can
// rely on it being true.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*auth.Claims)
	return cl, ok && cl != nil
}

// RequireAuth returns a Gin middleware that authenticates requests with a
// bearer token verified by issuer.
//
// Behavior:
//   - No Authorization header → 401 {"error": "Missing token"}.
//   - Expired token → 401 {"error": "Token expired"}.
//   - Any other verification failure, including a header without the Bearer
//     scheme → 401 {"error": "Invalid token"}.
//   - On success the claims are stored in the context together with the
//     admin's username under "userID", which downstream logging and rate
//     limiting pick up.
func RequireAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(claimsKey, claims)
		c.Set("userID", claims.Username)
		c.Next()
	}
}

// RequireRole returns a Gin middleware that rejects callers whose verified
// role differs from role, responding 403 with msg in the standard envelope.
// It must be mounted after RequireAuth.
func RequireRole(role, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
// Only the Bearer scheme is accepted; the scheme match is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
