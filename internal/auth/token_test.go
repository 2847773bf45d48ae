package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	iss := NewIssuer("test-secret", 8*time.Hour)

	tok, err := iss.Issue("root", "superadmin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected compact JWS with 3 parts, got %d", len(parts))
	}

	claims, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "root" {
		t.Fatalf("username = %q, want root", claims.Username)
	}
	if claims.Role != "superadmin" {
		t.Fatalf("role = %q, want superadmin", claims.Role)
	}
	if !claims.IsSuperadmin() {
		t.Fatalf("IsSuperadmin() = false for superadmin claims")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > 8*time.Hour {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := NewIssuer("test-secret", -time.Minute) // already expired at issue

	tok, err := iss.Issue("root", "superadmin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = iss.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewIssuer("secret-a", time.Hour).Issue("root", "superadmin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = NewIssuer("secret-b", time.Hour).Verify(tok)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong secret, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := iss.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestVerify_ExpiredBeatsMalformedOrdering(t *testing.T) {
	// An expired-but-correctly-signed token must map to the expired case,
	// never the generic invalid one.
	iss := NewIssuer("test-secret", -time.Hour)
	tok, _ := iss.Issue("mod", "moderator")

	_, err := iss.Verify(tok)
	if errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expired token misreported as malformed")
	}
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestClaims_IsSuperadmin(t *testing.T) {
	if (&Claims{Role: "moderator"}).IsSuperadmin() {
		t.Fatalf("moderator claims reported superadmin")
	}
	var nilClaims *Claims
	if nilClaims.IsSuperadmin() {
		t.Fatalf("nil claims reported superadmin")
	}
}
