// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Confession
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Lifecycle notes:
//   - Confessions are soft-deleted by flipping status to "deleted"; the row
//     stays until the TTL reaper hard-deletes it at expires_at.
//   - SoftDeleteConfession only matches active rows, so a repeated delete of
//     the same id reports ErrNotFound; the one-way transition is enforced
//     at the query level, not with a read-check-write.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// CreateConfession inserts a new active confession with zeroed reaction
// counters and an absolute TTL deadline of createdAt + ttl.
func CreateConfession(ctx context.Context, db *gorm.DB, body, mood, sessionID string, ttl time.Duration) (*domain.Confession, error) {
	now := time.Now().UTC()
	c := &domain.Confession{
		ID:        uuid.NewString(),
		Body:      body,
		Mood:      mood,
		SessionID: sessionID,
		Reactions: domain.ReactionCounts{},
		Status:    domain.StatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetConfession fetches a confession by id regardless of status, or
// ErrNotFound. TTL-expired rows that the reaper has not swept yet are
// still returned; callers must not assume indefinite retrievability.
func GetConfession(ctx context.Context, db *gorm.DB, id string) (*domain.Confession, error) {
	var c domain.Confession
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SoftDeleteConfession flips an active confession to deleted. If the id is
// unknown, or the row is already deleted, no rows match and ErrNotFound is
// returned, making the operation idempotent-to-caller in effect.
func SoftDeleteConfession(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Confession{}).
		Where("id = ? AND status = ?", id, domain.StatusActive).
		Update("status", domain.StatusDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchConfessions returns confessions matching both filters (AND), newest
// first. An empty mood matches all moods; an empty status matches all states.
func SearchConfessions(ctx context.Context, db *gorm.DB, mood, status string) ([]domain.Confession, error) {
	q := db.WithContext(ctx).Model(&domain.Confession{})
	if mood != "" {
		q = q.Where("mood = ?", mood)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Confession
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// ListRecentConfessions returns the newest limit confessions unfiltered by
// status, for the admin dashboard.
func ListRecentConfessions(ctx context.Context, db *gorm.DB, limit int) ([]domain.Confession, error) {
	var out []domain.Confession
	err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountConfessions returns the number of confessions with the given status,
// or all confessions when status is empty.
func CountConfessions(ctx context.Context, db *gorm.DB, status string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Confession{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// IncrementEmbeddedCounter bumps one emoji counter inside the confession's
// JSON-serialized counter map. The read-modify-write runs on the handle the
// caller provides, which is expected to be transaction-bound when the update
// must be atomic with the reaction-record upsert.
func IncrementEmbeddedCounter(ctx context.Context, db *gorm.DB, id, emoji string) error {
	var c domain.Confession
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return err
	}
	c.Reactions.Inc(emoji)
	counters, err := jsonColumn(c.Reactions)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.Confession{}).
		Where("id = ?", id).
		Update("reactions", counters).Error
}
