package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFeedback_Submit(t *testing.T) {
	db := newTestDB(t)
	svc := &FeedbackService{DB: db}
	ctx := context.Background()

	if _, err := svc.Submit(ctx, "s1", "   "); !errors.Is(err, ErrEmptyFeedback) {
		t.Fatalf("blank feedback: %v", err)
	}

	fb, err := svc.Submit(ctx, "s1", "  love the app  ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.Content != "love the app" {
		t.Errorf("content not trimmed: %q", fb.Content)
	}

	out, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
}

func TestFeedback_Submit_UnknownSessionStillStores(t *testing.T) {
	db := newTestDB(t)
	svc := &FeedbackService{DB: db}

	// The activity touch is best effort; an unknown session must not
	// block the submission.
	if _, err := svc.Submit(context.Background(), "ghost", "hello"); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestFeedback_Report(t *testing.T) {
	db := newTestDB(t)
	fsvc := &FeedbackService{DB: db}
	csvc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, csvc)

	c, err := csvc.Create(ctx, sess.ID, "body", "happy")
	if err != nil {
		t.Fatalf("create confession: %v", err)
	}

	if _, err := fsvc.Report(ctx, sess.ID, c.ID, "  "); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("blank reason: %v", err)
	}
	if _, err := fsvc.Report(ctx, sess.ID, "missing", "spam"); !errors.Is(err, ErrConfessionNotFound) {
		t.Fatalf("unknown confession: %v", err)
	}

	r, err := fsvc.Report(ctx, sess.ID, c.ID, "spam")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.ConfessionID != c.ID {
		t.Errorf("report target = %q", r.ConfessionID)
	}

	// Reports against soft-deleted confessions are still accepted.
	if err := csvc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fsvc.Report(ctx, sess.ID, c.ID, "still bad"); err != nil {
		t.Fatalf("report deleted: %v", err)
	}

	out, err := fsvc.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("reports = %d, want 2", len(out))
	}
}

func TestFeedback_ListReports_Empty(t *testing.T) {
	db := newTestDB(t)
	svc := &FeedbackService{DB: db}

	out, err := svc.ListReports(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}
