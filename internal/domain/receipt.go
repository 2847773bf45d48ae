// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// SubmissionReceipt records a previously accepted confession submission,
// keyed by (session_id, key). It enables safe retries for the public POST
// endpoint: a replayed submission returns the originally created confession
// instead of inserting a duplicate.
type SubmissionReceipt struct {
	ID           string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	SessionID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_session_key,priority:1"`
	Key          string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_session_key,priority:2"`
	ConfessionID string    `gorm:"type:TEXT NOT NULL"`
	Status       int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt    time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt    time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (SubmissionReceipt) TableName() string { return "submission_receipts" }
