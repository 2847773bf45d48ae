// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used by the
// admin dashboard and the health endpoint. Each function is context-aware
// and safe to call from services or handlers.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// StoreStats carries the record totals shown on the admin dashboard.
type StoreStats struct {
	Confessions int64 `json:"confessions"`
	Feedback    int64 `json:"feedback"`
	Reports     int64 `json:"reports"`
	Users       int64 `json:"users"`
}

// CollectStats counts every record kind in one pass. Counts include
// soft-deleted confessions, matching the dashboard's unfiltered totals.
func CollectStats(ctx context.Context, db *gorm.DB) (StoreStats, error) {
	var st StoreStats
	var err error
	if st.Confessions, err = CountConfessions(ctx, db, ""); err != nil {
		return st, err
	}
	if st.Feedback, err = CountFeedback(ctx, db); err != nil {
		return st, err
	}
	if st.Reports, err = CountReports(ctx, db); err != nil {
		return st, err
	}
	if st.Users, err = CountSessions(ctx, db); err != nil {
		return st, err
	}
	return st, nil
}

// DatabaseSizeBytes reports the SQLite file size as page_count * page_size.
func DatabaseSizeBytes(ctx context.Context, db *gorm.DB) (int64, error) {
	var pageCount, pageSize int64
	if err := db.WithContext(ctx).Raw("PRAGMA page_count").Scan(&pageCount).Error; err != nil {
		return 0, err
	}
	if err := db.WithContext(ctx).Raw("PRAGMA page_size").Scan(&pageSize).Error; err != nil {
		return 0, err
	}
	return pageCount * pageSize, nil
}

// ListTables returns the user table names in the SQLite schema, the closest
// relational analogue to a document store's collection listing.
func ListTables(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name").
		Scan(&names).Error
	return names, err
}
