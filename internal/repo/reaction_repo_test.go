package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestUpsertReaction_FirstCallCreates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := CreateConfession(ctx, db, "body", "happy", "author", time.Hour)
	if err != nil {
		t.Fatalf("create confession: %v", err)
	}

	rec, first, err := UpsertReaction(ctx, db, c.ID, "heart", "s1")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !first {
		t.Fatalf("first reaction not reported as first for session")
	}
	if rec.Count != 1 {
		t.Fatalf("count = %d, want 1", rec.Count)
	}
	if len(rec.SessionIDs) != 1 || rec.SessionIDs[0] != "s1" {
		t.Fatalf("session set = %v", rec.SessionIDs)
	}
}

func TestUpsertReaction_RepeatSessionKeepsSetSizeOne(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, _ := CreateConfession(ctx, db, "body", "happy", "author", time.Hour)

	if _, _, err := UpsertReaction(ctx, db, c.ID, "heart", "s1"); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	rec, first, err := UpsertReaction(ctx, db, c.ID, "heart", "s1")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first {
		t.Fatalf("repeat session reported as first")
	}
	// Count follows raw increment semantics; the set deduplicates.
	if rec.Count != 2 {
		t.Fatalf("count = %d, want 2", rec.Count)
	}
	got, err := GetReaction(ctx, db, c.ID, "heart")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.SessionIDs) != 1 {
		t.Fatalf("session set size = %d, want 1", len(got.SessionIDs))
	}
}

func TestUpsertReaction_DistinctSessionsGrowSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, _ := CreateConfession(ctx, db, "body", "happy", "author", time.Hour)

	for _, sid := range []string{"s1", "s2", "s3"} {
		if _, _, err := UpsertReaction(ctx, db, c.ID, "relate", sid); err != nil {
			t.Fatalf("upsert %s: %v", sid, err)
		}
	}
	got, err := GetReaction(ctx, db, c.ID, "relate")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Count != 3 || len(got.SessionIDs) != 3 {
		t.Fatalf("count=%d set=%v", got.Count, got.SessionIDs)
	}
}

func TestUpsertReaction_OneRecordPerEmojiPair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, _ := CreateConfession(ctx, db, "body", "happy", "author", time.Hour)

	if _, _, err := UpsertReaction(ctx, db, c.ID, "heart", "s1"); err != nil {
		t.Fatalf("upsert heart: %v", err)
	}
	if _, _, err := UpsertReaction(ctx, db, c.ID, "laugh", "s1"); err != nil {
		t.Fatalf("upsert laugh: %v", err)
	}

	var n int64
	if err := db.Table("reactions").Where("confession_id = ?", c.ID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("reaction records = %d, want 2 (one per emoji)", n)
	}
}

func TestUpsertReaction_SessionSetStoredAsJSON(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := CreateConfession(ctx, db, "body", "happy", "author", time.Hour)
	if err != nil {
		t.Fatalf("create confession: %v", err)
	}
	if _, _, err := UpsertReaction(ctx, db, c.ID, "heart", "s1"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := UpsertReaction(ctx, db, c.ID, "heart", "s2"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// The column must hold JSON text so GORM's serializer can read it back.
	var raw string
	if err := db.Raw("SELECT session_ids FROM reactions WHERE confession_id = ? AND emoji = ?", c.ID, "heart").Scan(&raw).Error; err != nil {
		t.Fatalf("raw select: %v", err)
	}
	var set []string
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		t.Fatalf("stored session_ids is not JSON (%q): %v", raw, err)
	}
	if len(set) != 2 {
		t.Fatalf("session set = %v, want 2 entries", set)
	}
}
