// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for anonymous
// Session records.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// CreateSession inserts a fresh anonymous session with a generated id and
// zeroed activity counters.
func CreateSession(ctx context.Context, db *gorm.DB) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:           uuid.NewString(),
		MoodProfile:  map[string]int{},
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a session by id, or ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TouchSession advances last_activity to at. The guard keeps the column
// monotonically non-decreasing under concurrent touches.
func TouchSession(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("session_id = ? AND last_activity <= ?", id, at).
		Update("last_activity", at).Error
}

// RecordConfessionActivity bumps the session's confession counter, folds the
// mood into the mood profile, and touches last_activity.
func RecordConfessionActivity(ctx context.Context, db *gorm.DB, id, mood string, at time.Time) error {
	s, err := GetSession(ctx, db, id)
	if err != nil {
		return err
	}
	if s.MoodProfile == nil {
		s.MoodProfile = map[string]int{}
	}
	if mood != "" {
		s.MoodProfile[mood]++
	}
	profile, err := jsonColumn(s.MoodProfile)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("session_id = ?", id).
		Updates(map[string]interface{}{
			"confession_count": gorm.Expr("confession_count + 1"),
			"mood_profile":     profile,
			"last_activity":    at,
		}).Error
}

// RecordReactionActivity bumps the session's reaction counter and touches
// last_activity.
func RecordReactionActivity(ctx context.Context, db *gorm.DB, id string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("session_id = ?", id).
		Updates(map[string]interface{}{
			"reaction_count": gorm.Expr("reaction_count + 1"),
			"last_activity":  at,
		}).Error
}

// CountSessions returns the total number of live session rows.
func CountSessions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Session{}).Count(&total).Error
	return total, err
}
