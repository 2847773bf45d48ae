// Package services – FeedbackService
//
// This file implements the FeedbackService, which handles free-form user
// feedback and confession reports. Both are append-only: once stored they
// are never mutated or deleted, and the moderation panel reads them back
// newest first.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/repo"
)

// FeedbackService implements the use-cases around feedback and reports.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// Submit stores a free-form feedback entry for sessionID. Blank content
// yields ErrEmptyFeedback. The session's last_activity is touched on a
// best-effort basis; unknown sessions do not fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, sessionID, content string) (*domain.Feedback, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyFeedback
	}
	fb, err := repo.CreateFeedback(ctx, s.DB, content, sessionID)
	if err != nil {
		return nil, err
	}
	_ = repo.TouchSession(ctx, s.DB, sessionID, time.Now().UTC())
	return fb, nil
}

// List returns every feedback entry, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return repo.ListFeedback(ctx, s.DB)
}

// Report files a complaint against a confession.
//
// Semantics and validation:
//   - reason must be non-blank; otherwise ErrEmptyReason.
//   - confessionID must name an existing confession (any status, so
//     moderators can still see complaints about removed content);
//     otherwise ErrConfessionNotFound.
func (s *FeedbackService) Report(ctx context.Context, sessionID, confessionID, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	if _, err := repo.GetConfession(ctx, s.DB, confessionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}
	return repo.CreateReport(ctx, s.DB, confessionID, reason, sessionID)
}

// ListReports returns every report, newest first. An empty table yields an
// empty list, never an error.
func (s *FeedbackService) ListReports(ctx context.Context) ([]domain.Report, error) {
	return repo.ListReports(ctx, s.DB)
}
