// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements safe-retry support for the public confession POST.
// Guests submit from flaky mobile connections; a client that times out and
// retries must not publish the same confession twice. The client sends a
// stable Submission-Key header, the guard validates it and checks whether a
// receipt for (session, key) already exists, and the handler serves the
// previously stored confession instead of creating a new one.
//
// The guard keeps transport concerns (validation, context stashing) here and
// decouples persistence via the narrow ReceiptLookup function type.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderSubmissionKey is the request header that carries the client-chosen
// retry key for unsafe public operations.
const HeaderSubmissionKey = "Submission-Key"

// HeaderSessionID is the request header that carries the anonymous session
// id on the public surface.
const HeaderSessionID = "X-Session-ID"

// Context keys used internally to stash submission-guard state.
const (
	ctxKeySubmitKey  = "submit.key"
	ctxKeySubmitSeen = "submit.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// SubmissionKey returns the validated retry key stored by SubmissionGuard.
// The second return value indicates presence. Handlers should prefer this
// over reading the header directly.
func SubmissionKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeySubmitKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the guard found a stored receipt for this
// request's (session, key) pair, meaning the operation already completed.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeySubmitSeen)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// SubmissionOptions configures header validation for SubmissionGuard.
// Receipt TTL enforcement lives inside the lookup, not here.
type SubmissionOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative token
	// pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// ReceiptLookup answers whether a still-valid receipt exists for
// (sessionID, key) at the given time. Implementations consult the
// submission_receipts table; lookup failures must not block normal
// processing, so return an error only for observability.
type ReceiptLookup func(ctx context.Context, sessionID, key string, now time.Time) (exists bool, err error)

// SubmissionGuard validates the Submission-Key header when present, stashes
// it in the request context, and checks for a stored receipt via lookup.
// When a replay is detected it marks the context so the handler can serve
// the stored result and the rate limiter can skip token accounting.
//
// Behavior:
//   - Header absent: no-op.
//   - Header fails validation: 400 {"error": "Invalid submission key"}.
//   - Receipt found: replay and rate-bypass flags are set.
//   - Otherwise the request proceeds normally.
func SubmissionGuard(opts SubmissionOptions, lookup ReceiptLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderSubmissionKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid submission key",
			})
			return
		}

		c.Set(ctxKeySubmitKey, key)

		if lookup != nil {
			sid := c.GetHeader(HeaderSessionID)
			now := time.Now().UTC()
			if exists, _ := lookup(c.Request.Context(), sid, key, now); exists {
				c.Set(ctxKeySubmitSeen, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
