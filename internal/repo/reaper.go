// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file implements the TTL reaper, the background policy
// that hard-deletes time-bounded records once their deadline elapses:
//
//   - confessions after expires_at (24h default), regardless of status;
//     soft-deleted rows age out the same as active ones,
//   - sessions idle past the session TTL (7d default),
//   - submission receipts after expires_at.
//
// Application code never enforces TTLs itself; it simply must not assume a
// record it created remains retrievable indefinitely.
package repo

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// Reaper periodically sweeps expired rows from the store.
type Reaper struct {
	DB         *gorm.DB
	SessionTTL time.Duration
	Interval   time.Duration
	Log        zerolog.Logger
}

// Run sweeps on every tick until ctx is cancelled. It performs one immediate
// sweep on startup so a long-stopped instance catches up before serving.
func (r *Reaper) Run(ctx context.Context) {
	r.sweep(ctx)

	t := time.NewTicker(r.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep(ctx)
		}
	}
}

// SweepOnce runs a single sweep pass; exposed for tests and manual runs.
func (r *Reaper) SweepOnce(ctx context.Context) { r.sweep(ctx) }

func (r *Reaper) sweep(ctx context.Context) {
	now := time.Now().UTC()

	confessions := r.deleteWhere(ctx, &domain.Confession{}, "expires_at <= ?", now)
	sessions := r.deleteWhere(ctx, &domain.Session{}, "last_activity <= ?", now.Add(-r.SessionTTL))
	receipts := r.deleteWhere(ctx, &domain.SubmissionReceipt{}, "expires_at <= ?", now)

	if confessions+sessions+receipts > 0 {
		r.Log.Info().
			Int64("confessions", confessions).
			Int64("sessions", sessions).
			Int64("receipts", receipts).
			Msg("ttl sweep")
	}
}

// deleteWhere hard-deletes matching rows and returns the affected count.
// Sweep failures are logged and skipped; the next tick retries.
func (r *Reaper) deleteWhere(ctx context.Context, model interface{}, cond string, args ...interface{}) int64 {
	res := r.DB.WithContext(ctx).Where(cond, args...).Delete(model)
	if res.Error != nil {
		r.Log.Error().Err(res.Error).Msg("ttl sweep failed")
		return 0
	}
	return res.RowsAffected
}
