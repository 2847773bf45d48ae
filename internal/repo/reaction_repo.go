// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the reaction-record upsert.
//
// A reaction record is the per-(confession_id, emoji) tally row. The upsert
// mirrors a document-store "$inc + $addToSet" update:
//   - count increments on every call (raw store-increment semantics),
//   - session_ids gains the caller's session id at most once.
//
// The pair of reads and writes runs on the handle the caller provides; the
// service layer wraps it in a transaction together with the embedded-counter
// update so concurrent reactions on the same confession serialize there.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
)

// UpsertReaction applies one reaction to the (confessionID, emoji) record.
//
// Returns the updated record and firstForSession=true when sessionID was not
// previously in the record's session set. Emoji validity is enforced at the
// service layer.
func UpsertReaction(ctx context.Context, db *gorm.DB, confessionID, emoji, sessionID string) (rec *domain.Reaction, firstForSession bool, err error) {
	var r domain.Reaction
	err = db.WithContext(ctx).
		Where("confession_id = ? AND emoji = ?", confessionID, emoji).
		First(&r).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		r = domain.Reaction{
			ID:           uuid.NewString(),
			ConfessionID: confessionID,
			Emoji:        emoji,
			Count:        1,
			SessionIDs:   []string{sessionID},
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.WithContext(ctx).Create(&r).Error; err != nil {
			// A concurrent insert may have won the unique index race;
			// surface it for the caller's transaction to retry.
			if isUniqueViolation(err) {
				return nil, false, ErrDuplicate
			}
			return nil, false, err
		}
		return &r, true, nil

	case err != nil:
		return nil, false, err
	}

	firstForSession = !containsSession(r.SessionIDs, sessionID)
	if firstForSession {
		r.SessionIDs = append(r.SessionIDs, sessionID)
	}
	set, err := jsonColumn(r.SessionIDs)
	if err != nil {
		return nil, false, err
	}
	res := db.WithContext(ctx).
		Model(&domain.Reaction{}).
		Where("id = ?", r.ID).
		Updates(map[string]interface{}{
			"count":       gorm.Expr("count + 1"),
			"session_ids": set,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	r.Count++
	return &r, firstForSession, nil
}

// GetReaction fetches the tally record for (confessionID, emoji), or
// ErrNotFound.
func GetReaction(ctx context.Context, db *gorm.DB, confessionID, emoji string) (*domain.Reaction, error) {
	var r domain.Reaction
	err := db.WithContext(ctx).
		Where("confession_id = ? AND emoji = ?", confessionID, emoji).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// containsSession reports whether id is already in the session set.
func containsSession(set []string, id string) bool {
	for _, s := range set {
		if s == id {
			return true
		}
	}
	return false
}
