// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the
// SubmissionReceipt model used to implement safe-retry semantics for the
// public confession POST endpoint.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// GetReceipt returns a non-expired receipt or ErrNotFound.
func GetReceipt(ctx context.Context, db *gorm.DB, sessionID, key string, now time.Time) (*domain.SubmissionReceipt, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.SubmissionReceipt
	err := db.WithContext(ctx).
		Where("session_id = ? AND key = ? AND expires_at > ?", sessionID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// CreateReceipt inserts a receipt and returns ErrDuplicate on unique violation.
func CreateReceipt(ctx context.Context, db *gorm.DB, sessionID, key, confessionID string, status int, ttl time.Duration) (*domain.SubmissionReceipt, error) {
	now := time.Now().UTC()
	rec := &domain.SubmissionReceipt{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Key:          key,
		ConfessionID: confessionID,
		Status:       status,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
