// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the append-only
// Feedback and Report models.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// CreateFeedback inserts a free-form feedback row. Feedback is append-only:
// there is no update or delete path and no TTL.
func CreateFeedback(ctx context.Context, db *gorm.DB, content, sessionID string) (*domain.Feedback, error) {
	fb := &domain.Feedback{
		ID:        uuid.NewString(),
		Content:   content,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

// ListFeedback returns all feedback, newest first.
func ListFeedback(ctx context.Context, db *gorm.DB) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountFeedback returns the total number of feedback rows.
func CountFeedback(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Feedback{}).Count(&total).Error
	return total, err
}

// CreateReport files a report against a confession.
func CreateReport(ctx context.Context, db *gorm.DB, confessionID, reason, sessionID string) (*domain.Report, error) {
	r := &domain.Report{
		ID:           uuid.NewString(),
		ConfessionID: confessionID,
		Reason:       reason,
		SessionID:    sessionID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ListReports returns all reports, newest first. An empty table yields an
// empty slice, never an error.
func ListReports(ctx context.Context, db *gorm.DB) ([]domain.Report, error) {
	var out []domain.Report
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountReports returns the total number of report rows.
func CountReports(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Report{}).Count(&total).Error
	return total, err
}
