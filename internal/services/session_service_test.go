package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/confessly/go-confessly-backend/internal/repo"
)

func TestSession_StartAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := &SessionService{DB: db}
	ctx := context.Background()

	s, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.ID == "" {
		t.Fatalf("no session id issued")
	}

	got, err := svc.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("id mismatch")
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSession_Touch(t *testing.T) {
	db := newTestDB(t)
	svc := &SessionService{DB: db}
	ctx := context.Background()

	s, err := svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	before := s.LastActivity

	time.Sleep(2 * time.Millisecond)
	if err := svc.Touch(ctx, s.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := repo.GetSession(ctx, db, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.LastActivity.After(before) {
		t.Errorf("last_activity did not advance: %v -> %v", before, got.LastActivity)
	}

	// Touching an unknown session is a silent no-op.
	if err := svc.Touch(ctx, "ghost"); err != nil {
		t.Fatalf("touch unknown: %v", err)
	}
}
