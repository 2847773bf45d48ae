// Package services – AdminService
//
// This file implements the AdminService, which manages administrative
// accounts: registration, authentication, moderator provisioning, and
// account removal. Passwords are hashed with bcrypt before they ever reach
// the repository, and successful logins produce signed bearer tokens.
//
// Service-level errors (e.g. ErrAdminExists, ErrInvalidCredentials) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/auth"
	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/repo"
)

// AdminService implements the use-cases around administrative accounts.
// It validates input, hashes credentials, and persists accounts using the
// provided GORM handle.
type AdminService struct {
	// DB is the database handle used for all admin operations.
	DB *gorm.DB
	// Tokens signs and verifies bearer tokens for authenticated admins.
	Tokens *auth.Issuer
	// BcryptCost overrides the bcrypt work factor; zero means
	// bcrypt.DefaultCost.
	BcryptCost int
}

// NewAdminService constructs an AdminService with the default bcrypt cost.
func NewAdminService(db *gorm.DB, tokens *auth.Issuer) *AdminService {
	return &AdminService{DB: db, Tokens: tokens, BcryptCost: bcrypt.DefaultCost}
}

// Register creates a new admin account. The very first account in an empty
// store becomes a superadmin; every later registration is a moderator.
//
// Semantics and validation:
//   - username, email, and password must all be non-blank; otherwise
//     ErrMissingFields.
//   - A taken username yields ErrAdminExists.
//
// The count check and the insert run inside one transaction so two
// concurrent first registrations cannot both become superadmin.
func (s *AdminService) Register(ctx context.Context, username, email, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	var created *domain.Admin
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total, err := repo.CountAdmins(ctx, tx)
		if err != nil {
			return err
		}
		role := domain.RoleModerator
		if total == 0 {
			role = domain.RoleSuperadmin
		}
		created, err = repo.CreateAdmin(ctx, tx, username, email, hash, role)
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrAdminExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates username/password and returns a signed bearer token
// together with the account. Unknown usernames and wrong passwords both
// yield ErrInvalidCredentials; callers must not be able to tell them apart.
// On success the account's last_login timestamp is advanced.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	a, err := repo.FindAdminByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(a.Username, a.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	if err := repo.TouchLastLogin(ctx, s.DB, a.Username, now); err != nil {
		return "", nil, err
	}
	a.LastLogin = &now
	return token, a, nil
}

// Profile returns the account for username, or ErrAdminNotFound.
func (s *AdminService) Profile(ctx context.Context, username string) (*domain.Admin, error) {
	a, err := repo.FindAdminByUsername(ctx, s.DB, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return a, nil
}

// CreateModerator provisions a moderator account. Only handlers behind the
// superadmin guard call this; the service itself does not re-check the
// caller's role.
func (s *AdminService) CreateModerator(ctx context.Context, username, email, password string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	a, err := repo.CreateAdmin(ctx, s.DB, username, email, hash, domain.RoleModerator)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, ErrAdminExists
	}
	return a, err
}

// Delete removes the account for username permanently. Self-deletion is
// permitted; the caller's token simply stops matching any account.
func (s *AdminService) Delete(ctx context.Context, username string) error {
	err := repo.DeleteAdmin(ctx, s.DB, username)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrAdminNotFound
	}
	return err
}

// List returns every admin account, newest first. Password hashes are
// stripped before the structs leave the service.
func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	out, err := repo.ListAdmins(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

func (s *AdminService) hash(password string) (string, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
