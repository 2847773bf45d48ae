package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/confessly/go-confessly-backend/internal/auth"
)

func authRouter(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(issuer), func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username, "role": claims.Role})
	})
	r.GET("/super", RequireAuth(issuer), RequireRole("superadmin", "Unauthorized access"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func errBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func TestRequireAuth_MissingToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := authRouter(issuer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := errBody(t, w); got != "Missing token" {
		t.Fatalf("error = %q, want Missing token", got)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	expired := auth.NewIssuer("secret", -time.Minute)
	token, err := expired.Issue("root", "superadmin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := authRouter(issuer)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := errBody(t, w); got != "Token expired" {
		t.Fatalf("error = %q, want Token expired", got)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	other := auth.NewIssuer("other-secret", time.Hour)
	wrongKey, err := other.Issue("root", "superadmin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"garbage", "Bearer not.a.token"},
		{"wrong signing key", "Bearer " + wrongKey},
		{"wrong scheme", "Basic abc123"},
		{"bare token", "justonetoken"},
	}

	r := authRouter(issuer)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tc.header)
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if got := errBody(t, w); got != "Invalid token" {
				t.Fatalf("error = %q, want Invalid token", got)
			}
		})
	}
}

func TestRequireAuth_Success(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("mod", "moderator")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := authRouter(issuer)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["username"] != "mod" || body["role"] != "moderator" {
		t.Fatalf("claims surfaced = %v", body)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	r := authRouter(issuer)

	modToken, _ := issuer.Issue("mod", "moderator")
	superToken, _ := issuer.Issue("root", "superadmin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/super", nil)
	req.Header.Set("Authorization", "Bearer "+modToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("moderator status = %d, want 403", w.Code)
	}
	if got := errBody(t, w); got != "Unauthorized access" {
		t.Fatalf("error = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/super", nil)
	req.Header.Set("Authorization", "Bearer "+superToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("superadmin status = %d, want 200", w.Code)
	}
}

func TestClaimsFrom_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := ClaimsFrom(c); ok {
		t.Fatalf("expected no claims on bare context")
	}
}
