// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Admin model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules (role checks, password hashing)
// to the services package.
//
// Error semantics:
//   - A duplicate username relies on the database unique constraint and is
//     returned as ErrDuplicate. The service layer translates that into a
//     domain error (e.g., ErrAdminExists).
//   - When an admin is not found, functions return ErrNotFound
//     (alias of gorm.ErrRecordNotFound).
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
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

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an insert violated a unique constraint.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation detects unique-constraint violations across drivers.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}

// CreateAdmin inserts a new admin row with a UUID primary key, the fixed
// default permission set, and status "active". The caller supplies an
// already-hashed password. Returns ErrDuplicate when the username is taken.
func CreateAdmin(ctx context.Context, db *gorm.DB, username, email, passwordHash, role string) (*domain.Admin, error) {
	a := &domain.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Permissions:  domain.DefaultPermissions,
		Status:       "active",
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return a, nil
}

// FindAdminByUsername fetches a single admin by username, or ErrNotFound.
func FindAdminByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// TouchLastLogin records a successful authentication for username.
// Missing rows are ignored; login already established existence.
func TouchLastLogin(ctx context.Context, db *gorm.DB, username string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("username = ?", username).
		Update("last_login", at).Error
}

// ListAdmins returns all admin records ordered by creation time descending.
// Password hashes are never serialized (json:"-") but are present on the
// returned structs; callers decide what to expose.
func ListAdmins(ctx context.Context, db *gorm.DB) ([]domain.Admin, error) {
	var out []domain.Admin
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountAdmins returns the total number of admin accounts.
func CountAdmins(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Admin{}).Count(&total).Error
	return total, err
}

// DeleteAdmin removes the admin row for username permanently (hard delete).
// If no rows are affected, it returns ErrNotFound.
func DeleteAdmin(ctx context.Context, db *gorm.DB, username string) error {
	res := db.WithContext(ctx).
		Where("username = ?", username).
		Delete(&domain.Admin{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
