// Package services – SessionService
//
// This file implements the SessionService, which issues and tracks the
// anonymous browser sessions that correlate guest activity without
// registration.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/repo"
)

// SessionService implements the use-cases around anonymous sessions.
type SessionService struct {
	// DB is the database handle used for all session operations.
	DB *gorm.DB
}

// Start issues a fresh anonymous session with zeroed activity counters.
func (s *SessionService) Start(ctx context.Context) (*domain.Session, error) {
	return repo.CreateSession(ctx, s.DB)
}

// Get returns the session for id, or ErrSessionNotFound.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := repo.GetSession(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// Touch advances the session's last_activity to now. Unknown ids are
// ignored; activity tracking is best effort.
func (s *SessionService) Touch(ctx context.Context, id string) error {
	return repo.TouchSession(ctx, s.DB, id, time.Now().UTC())
}
