package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/repo"
)

func seedSession(t *testing.T, svc *ConfessionService) *domain.Session {
	t.Helper()
	s, err := repo.CreateSession(context.Background(), svc.DB)
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func TestConfession_Create(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, 24*time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	c, err := svc.Create(ctx, sess.ID, "  i did a thing  ", "HaPPy")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Body != "i did a thing" {
		t.Errorf("body not trimmed: %q", c.Body)
	}
	if c.Mood != "happy" {
		t.Errorf("mood not folded: %q", c.Mood)
	}

	got, err := repo.GetSession(ctx, db, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.ConfessionCount != 1 || got.MoodProfile["happy"] != 1 {
		t.Errorf("session activity not recorded: %+v", got)
	}
}

func TestConfession_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	if _, err := svc.Create(ctx, sess.ID, "   ", "happy"); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("blank body: %v", err)
	}
	long := strings.Repeat("x", svc.BodyMaxLen+1)
	if _, err := svc.Create(ctx, sess.ID, long, "happy"); !errors.Is(err, ErrBodyTooLong) {
		t.Fatalf("long body: %v", err)
	}
	if _, err := svc.Create(ctx, "no-such-session", "body", "happy"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("unknown session: %v", err)
	}
	// The failed transaction must not leave an orphaned confession behind.
	n, err := repo.CountConfessions(ctx, db, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("confessions = %d after failed creates, want 0", n)
	}
}

func TestConfession_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	c, err := svc.Create(ctx, sess.ID, "body", "sad")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.SoftDelete(ctx, c.ID); !errors.Is(err, ErrConfessionNotFound) {
		t.Fatalf("repeat delete: %v", err)
	}
	if err := svc.SoftDelete(ctx, "missing"); !errors.Is(err, ErrConfessionNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestConfession_Search_DefaultsAndFolding(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	if _, err := svc.Create(ctx, sess.ID, "a", "happy"); err != nil {
		t.Fatalf("create: %v", err)
	}
	c, err := svc.Create(ctx, sess.ID, "b", "happy")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Empty status defaults to active; mood filter is caseless.
	out, err := svc.Search(ctx, "HAPPY", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 (deleted row excluded)", len(out))
	}

	del, err := svc.Search(ctx, "", domain.StatusDeleted)
	if err != nil {
		t.Fatalf("search deleted: %v", err)
	}
	if len(del) != 1 {
		t.Fatalf("deleted len = %d, want 1", len(del))
	}
}

func TestConfession_React(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	c, err := svc.Create(ctx, sess.ID, "body", "happy")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.React(ctx, c.ID, "heart", sess.ID)
	if err != nil {
		t.Fatalf("react: %v", err)
	}
	if got.Reactions.Heart != 1 {
		t.Fatalf("heart = %d, want 1", got.Reactions.Heart)
	}

	// A repeat click from the same session keeps the display counter at 1
	// while the raw tally row keeps counting.
	got, err = svc.React(ctx, c.ID, "heart", sess.ID)
	if err != nil {
		t.Fatalf("repeat react: %v", err)
	}
	if got.Reactions.Heart != 1 {
		t.Fatalf("heart = %d after repeat, want 1", got.Reactions.Heart)
	}
	rec, err := repo.GetReaction(ctx, db, c.ID, "heart")
	if err != nil {
		t.Fatalf("get reaction: %v", err)
	}
	if rec.Count != 2 || len(rec.SessionIDs) != 1 {
		t.Fatalf("tally = %d / set %v", rec.Count, rec.SessionIDs)
	}

	// A different session advances the display counter again.
	other := seedSession(t, svc)
	got, err = svc.React(ctx, c.ID, "heart", other.ID)
	if err != nil {
		t.Fatalf("other session react: %v", err)
	}
	if got.Reactions.Heart != 2 {
		t.Fatalf("heart = %d, want 2", got.Reactions.Heart)
	}

	s, _ := repo.GetSession(ctx, db, sess.ID)
	if s.ReactionCount != 2 {
		t.Errorf("session reaction_count = %d, want 2", s.ReactionCount)
	}
}

func TestConfession_React_Errors(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	c, err := svc.Create(ctx, sess.ID, "body", "happy")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.React(ctx, c.ID, "thumbsdown", sess.ID); !errors.Is(err, ErrInvalidEmoji) {
		t.Fatalf("unknown emoji: %v", err)
	}
	if _, err := svc.React(ctx, "missing", "heart", sess.ID); !errors.Is(err, ErrConfessionNotFound) {
		t.Fatalf("unknown confession: %v", err)
	}
	if err := svc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.React(ctx, c.ID, "heart", sess.ID); !errors.Is(err, ErrConfessionNotFound) {
		t.Fatalf("deleted confession: %v", err)
	}
}

func TestConfession_Dashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)
	ctx := context.Background()
	sess := seedSession(t, svc)

	var last *domain.Confession
	for i := 0; i < 7; i++ {
		var err error
		last, err = svc.Create(ctx, sess.ID, "body", "calm")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	// Deleted rows still count and still show among the recent five.
	if err := svc.SoftDelete(ctx, last.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sum, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if sum.Totals.Confessions != 7 {
		t.Errorf("confession total = %d, want 7", sum.Totals.Confessions)
	}
	if sum.Totals.Users != 1 {
		t.Errorf("user total = %d, want 1", sum.Totals.Users)
	}
	if len(sum.Recent) != DashboardRecentLimit {
		t.Fatalf("recent len = %d, want %d", len(sum.Recent), DashboardRecentLimit)
	}
	if sum.Recent[0].ID != last.ID {
		t.Errorf("newest confession missing from recent list")
	}
}

func TestConfession_Health(t *testing.T) {
	db := newTestDB(t)
	svc := NewConfessionService(db, time.Hour)

	rep, err := svc.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if rep.DatabaseSizeMB <= 0 {
		t.Errorf("db size = %f, want > 0", rep.DatabaseSizeMB)
	}
	if len(rep.Tables) == 0 {
		t.Errorf("no tables reported")
	}
	if rep.ServerTime.IsZero() {
		t.Errorf("server time missing")
	}
}
