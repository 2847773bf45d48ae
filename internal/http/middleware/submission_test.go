package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func guardRouter(lookup ReceiptLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", SubmissionGuard(SubmissionOptions{}, lookup), func(c *gin.Context) {
		key, _ := SubmissionKey(c)
		c.JSON(http.StatusOK, gin.H{"key": key, "replay": IsReplay(c), "bypass": IsRateBypass(c)})
	})
	return r
}

func TestSubmissionGuard_NoHeaderIsNoop(t *testing.T) {
	r := guardRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"replay":false`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSubmissionGuard_RejectsBadKeys(t *testing.T) {
	r := guardRouter(nil)
	for _, key := range []string{
		"has spaces",
		"weird#chars!",
		strings.Repeat("k", 201),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(HeaderSubmissionKey, key)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: status = %d, want 400", key, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid submission key") {
			t.Fatalf("key %q: body = %s", key, w.Body.String())
		}
	}
}

func TestSubmissionGuard_MarksReplay(t *testing.T) {
	lookup := func(ctx context.Context, sessionID, key string, now time.Time) (bool, error) {
		return sessionID == "s1" && key == "k1", nil
	}
	r := guardRouter(lookup)

	// Fresh key: no replay flags.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(HeaderSubmissionKey, "k9")
	req.Header.Set(HeaderSessionID, "s1")
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"replay":false`) {
		t.Fatalf("fresh key marked as replay: %s", w.Body.String())
	}

	// Known (session, key) pair: replay + rate bypass.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(HeaderSubmissionKey, "k1")
	req.Header.Set(HeaderSessionID, "s1")
	r.ServeHTTP(w, req)
	body := w.Body.String()
	if !strings.Contains(body, `"replay":true`) || !strings.Contains(body, `"bypass":true`) {
		t.Fatalf("replay not detected: %s", body)
	}
}

func TestSubmissionGuard_LookupErrorDoesNotBlock(t *testing.T) {
	lookup := func(ctx context.Context, sessionID, key string, now time.Time) (bool, error) {
		return false, context.DeadlineExceeded
	}
	r := guardRouter(lookup)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(HeaderSubmissionKey, "k1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite lookup failure", w.Code)
	}
}
