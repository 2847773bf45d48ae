// Package services – ConfessionService
//
// This file implements the ConfessionService, which governs the confession
// lifecycle: submission, moderation (soft delete), search, reactions, and
// the aggregate views shown on the admin dashboard. Mood tags are
// case-folded on the way in so search is caseless without any query-time
// normalization.
//
// Service-level errors (e.g. ErrConfessionNotFound, ErrInvalidEmoji) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/repo"
)

// DashboardRecentLimit is the number of newest confessions shown on the
// admin dashboard, regardless of status.
const DashboardRecentLimit = 5

// DashboardSummary aggregates the record totals and the newest confessions
// for the admin dashboard.
type DashboardSummary struct {
	Totals repo.StoreStats     `json:"stats"`
	Recent []domain.Confession `json:"recent_confessions"`
}

// HealthReport carries the operational snapshot served by the admin health
// endpoint.
type HealthReport struct {
	DatabaseSizeMB float64   `json:"database_size_mb"`
	Tables         []string  `json:"tables"`
	ServerTime     time.Time `json:"server_time"`
}

// ConfessionService implements the use-cases around confessions and
// reactions. It validates input, applies the confession TTL, and keeps the
// per-confession reaction state consistent inside transactions.
type ConfessionService struct {
	// DB is the database handle used for all confession operations.
	DB *gorm.DB
	// TTL is the lifetime of a confession from creation until the reaper
	// removes it.
	TTL time.Duration
	// BodyMaxLen caps confession bodies by rune length.
	BodyMaxLen int
}

// NewConfessionService constructs a ConfessionService with sane defaults.
func NewConfessionService(db *gorm.DB, ttl time.Duration) *ConfessionService {
	return &ConfessionService{DB: db, TTL: ttl, BodyMaxLen: 2000}
}

// moodFolder folds mood tags for caseless storage and matching.
var moodFolder = cases.Fold()

// FoldMood normalizes a mood tag: trimmed and case-folded. An empty result
// means "no mood".
func FoldMood(mood string) string {
	return moodFolder.String(strings.TrimSpace(mood))
}

// Create stores a new confession for sessionID and records the submission
// on the session (confession counter, mood profile, last activity).
//
// Semantics and validation:
//   - body must be non-blank after trimming; otherwise ErrEmptyBody.
//   - body must not exceed BodyMaxLen runes; otherwise ErrBodyTooLong.
//   - sessionID must name a live session; otherwise ErrSessionNotFound.
//
// The insert and the session bump run inside one transaction so a
// confession never exists without its activity trace.
func (s *ConfessionService) Create(ctx context.Context, sessionID, body, mood string) (*domain.Confession, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}
	if s.BodyMaxLen > 0 && utf8.RuneCountInString(body) > s.BodyMaxLen {
		return nil, ErrBodyTooLong
	}
	mood = FoldMood(mood)

	var created *domain.Confession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = repo.CreateConfession(ctx, tx, body, mood, sessionID, s.TTL)
		if err != nil {
			return err
		}
		err = repo.RecordConfessionActivity(ctx, tx, sessionID, mood, time.Now().UTC())
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SoftDelete transitions a confession from active to deleted. Repeat
// deletes and unknown ids both yield ErrConfessionNotFound; there is no
// restore path.
func (s *ConfessionService) SoftDelete(ctx context.Context, id string) error {
	err := repo.SoftDeleteConfession(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrConfessionNotFound
	}
	return err
}

// Search returns confessions matching mood AND status, newest first. An
// empty mood matches all moods; an empty status defaults to active. The
// mood filter is case-folded so it matches regardless of the caller's
// casing.
func (s *ConfessionService) Search(ctx context.Context, mood, status string) ([]domain.Confession, error) {
	if status == "" {
		status = domain.StatusActive
	}
	return repo.SearchConfessions(ctx, s.DB, FoldMood(mood), status)
}

// ListActive returns every active confession, newest first.
func (s *ConfessionService) ListActive(ctx context.Context) ([]domain.Confession, error) {
	return repo.SearchConfessions(ctx, s.DB, "", domain.StatusActive)
}

// React records an emoji reaction from sessionID on the confession.
//
// Semantics:
//   - emoji must belong to the fixed vocabulary; otherwise ErrInvalidEmoji.
//   - The confession must exist and be active; otherwise
//     ErrConfessionNotFound.
//   - The per-emoji tally row increments on every call; the embedded
//     display counters advance only on a session's first reaction with that
//     emoji, so repeat clicks cannot inflate what readers see.
//   - The session's reaction counter and last_activity advance on every
//     accepted call.
//
// The whole operation runs inside one transaction.
func (s *ConfessionService) React(ctx context.Context, confessionID, emoji, sessionID string) (*domain.Confession, error) {
	if !domain.ValidEmoji(emoji) {
		return nil, ErrInvalidEmoji
	}

	var out *domain.Confession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repo.GetConfession(ctx, tx, confessionID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrConfessionNotFound
			}
			return err
		}
		if c.Status != domain.StatusActive {
			return ErrConfessionNotFound
		}

		_, first, err := repo.UpsertReaction(ctx, tx, confessionID, emoji, sessionID)
		if err != nil {
			return err
		}
		if first {
			if err := repo.IncrementEmbeddedCounter(ctx, tx, confessionID, emoji); err != nil {
				return err
			}
		}
		if err := repo.RecordReactionActivity(ctx, tx, sessionID, time.Now().UTC()); err != nil {
			return err
		}

		out, err = repo.GetConfession(ctx, tx, confessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Dashboard assembles the record totals and the newest confessions,
// unfiltered by status.
func (s *ConfessionService) Dashboard(ctx context.Context) (DashboardSummary, error) {
	var sum DashboardSummary
	var err error
	if sum.Totals, err = repo.CollectStats(ctx, s.DB); err != nil {
		return sum, err
	}
	sum.Recent, err = repo.ListRecentConfessions(ctx, s.DB, DashboardRecentLimit)
	return sum, err
}

// Health reports the database size, the table inventory, and the current
// server time.
func (s *ConfessionService) Health(ctx context.Context) (HealthReport, error) {
	var rep HealthReport
	size, err := repo.DatabaseSizeBytes(ctx, s.DB)
	if err != nil {
		return rep, err
	}
	rep.DatabaseSizeMB = float64(size) / (1024 * 1024)
	if rep.Tables, err = repo.ListTables(ctx, s.DB); err != nil {
		return rep, err
	}
	rep.ServerTime = time.Now().UTC()
	return rep, nil
}
