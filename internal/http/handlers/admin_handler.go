// Admin identity HTTP handlers.
//
// This file exposes the account endpoints of the admin surface:
//   - POST   /api/admin/register           (create an admin account)
//   - POST   /api/admin/login              (authenticate, returns a token)
//   - GET    /api/admin/profile            (current admin's profile)
//   - GET    /api/admin/all                (superadmin: list admins)
//   - POST   /api/admin/moderator          (superadmin: create moderator)
//   - DELETE /api/admin/delete/{username}  (superadmin: delete admin)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate sentinel errors into HTTP responses with the
// standard envelope.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/confessly/go-confessly-backend/internal/domain"
	"github.com/confessly/go-confessly-backend/internal/http/middleware"
	"github.com/confessly/go-confessly-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AdminService defines the account operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type AdminService interface {
	// Register creates an admin; the first account becomes superadmin.
	Register(ctx context.Context, username, email, password string) (*domain.Admin, error)
	// Login authenticates and returns a signed token with the account.
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	// Profile returns the account for username.
	Profile(ctx context.Context, username string) (*domain.Admin, error)
	// CreateModerator provisions a moderator account.
	CreateModerator(ctx context.Context, username, email, password string) (*domain.Admin, error)
	// Delete removes an account permanently.
	Delete(ctx context.Context, username string) error
	// List returns all accounts with password hashes stripped.
	List(ctx context.Context) ([]domain.Admin, error)
}

// ConfessionService defines the confession operations consumed by HTTP
// handlers on both the admin and public surfaces.
type ConfessionService interface {
	Create(ctx context.Context, sessionID, body, mood string) (*domain.Confession, error)
	SoftDelete(ctx context.Context, id string) error
	Search(ctx context.Context, mood, status string) ([]domain.Confession, error)
	ListActive(ctx context.Context) ([]domain.Confession, error)
	React(ctx context.Context, confessionID, emoji, sessionID string) (*domain.Confession, error)
	Dashboard(ctx context.Context) (services.DashboardSummary, error)
	Health(ctx context.Context) (services.HealthReport, error)
}

// FeedbackService defines feedback and report operations consumed by HTTP
// handlers.
type FeedbackService interface {
	Submit(ctx context.Context, sessionID, content string) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
	Report(ctx context.Context, sessionID, confessionID, reason string) (*domain.Report, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
}

// SessionService defines anonymous session operations consumed by HTTP
// handlers.
type SessionService interface {
	Start(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Touch(ctx context.Context, id string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for admin identity, moderation, and
// the guest surface. It depends on abstract service interfaces to keep
// transport concerns separate from business logic. DB and ReceiptTTL back
// the safe-retry receipts on the public confession POST.
type Handlers struct {
	adminSvc AdminService
	confSvc  ConfessionService
	fbSvc    FeedbackService
	sessSvc  SessionService

	DB         *gorm.DB
	ReceiptTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(adminSvc AdminService, confSvc ConfessionService, fbSvc FeedbackService, sessSvc SessionService) *Handlers {
	return &Handlers{adminSvc: adminSvc, confSvc: confSvc, fbSvc: fbSvc, sessSvc: sessSvc}
}

// currentAdmin returns the verified username from the token claims.
func currentAdmin(c *gin.Context) string {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return claims.Username
	}
	return ""
}

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an admin account.
type RegisterRequest struct {
	Username string `json:"username" example:"root"`
	Email    string `json:"email"    example:"root@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

// LoginRequest is the JSON payload for authenticating an admin.
type LoginRequest struct {
	Username string `json:"username" example:"root"`
	Password string `json:"password" example:"hunter2hunter2"`
}

// AdminSummary is the account shape embedded in login responses.
type AdminSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	Token string       `json:"token"`
	Admin AdminSummary `json:"admin"`
}

// ProfileData is the payload of the profile endpoint.
type ProfileData struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

//
// Handlers
//

// Register godoc
// @ID          registerAdmin
// @Summary     Register an admin account
// @Description Creates an admin account. The first account in an empty store becomes superadmin.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterRequest  true  "Account payload"
// @Success     201  {object}  handlers.SuccessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     409  {object}  handlers.ErrorResponse  "Admin already exists"
// @Router      /admin/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	a, err := h.adminSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, fmt.Sprintf("Admin '%s' created successfully", a.Username), nil)
	case errors.Is(err, services.ErrMissingFields):
		fail(c, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, services.ErrAdminExists):
		fail(c, http.StatusConflict, "Admin already exists")
	default:
		fail(c, http.StatusInternalServerError, "Registration failed")
	}
}

// Login godoc
// @ID          adminLogin
// @Summary     Authenticate an admin
// @Description Verifies credentials and returns a signed bearer token valid for 8 hours.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  handlers.SuccessResponse{data=handlers.LoginData}
// @Failure     400  {object}  handlers.ErrorResponse  "Username and password required"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /admin/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Username and password required")
		return
	}

	token, a, err := h.adminSvc.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Login successful", LoginData{
			Token: token,
			Admin: AdminSummary{Username: a.Username, Email: a.Email, Role: a.Role},
		})
	case errors.Is(err, services.ErrMissingFields):
		fail(c, http.StatusBadRequest, "Username and password required")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		fail(c, http.StatusInternalServerError, "Login failed")
	}
}

// Profile godoc
// @ID          adminProfile
// @Summary     Current admin profile
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=handlers.ProfileData}
// @Failure     401  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Admin not found"
// @Router      /admin/profile [get]
func (h *Handlers) Profile(c *gin.Context) {
	a, err := h.adminSvc.Profile(c.Request.Context(), currentAdmin(c))
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Admin profile fetched", ProfileData{
			Username:  a.Username,
			Email:     a.Email,
			Role:      a.Role,
			LastLogin: a.LastLogin,
			CreatedAt: a.CreatedAt,
		})
	case errors.Is(err, services.ErrAdminNotFound):
		fail(c, http.StatusNotFound, "Admin not found")
	default:
		fail(c, http.StatusInternalServerError, "Profile lookup failed")
	}
}

// AllAdmins godoc
// @ID          listAdmins
// @Summary     List all admin accounts
// @Description Superadmin only. Password hashes are never included.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Admin}
// @Failure     403  {object}  handlers.ErrorResponse  "Unauthorized access"
// @Router      /admin/all [get]
func (h *Handlers) AllAdmins(c *gin.Context) {
	admins, err := h.adminSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Listing admins failed")
		return
	}
	ok(c, http.StatusOK, "All admins fetched", admins)
}

// CreateModerator godoc
// @ID          createModerator
// @Summary     Create a moderator account
// @Description Superadmin only.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.RegisterRequest  true  "Account payload"
// @Success     201  {object}  handlers.SuccessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     403  {object}  handlers.ErrorResponse  "Only superadmins can create moderators"
// @Failure     409  {object}  handlers.ErrorResponse  "Username already exists"
// @Router      /admin/moderator [post]
func (h *Handlers) CreateModerator(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Missing fields")
		return
	}

	m, err := h.adminSvc.CreateModerator(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, fmt.Sprintf("Moderator '%s' created successfully", m.Username), nil)
	case errors.Is(err, services.ErrMissingFields):
		fail(c, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, services.ErrAdminExists):
		fail(c, http.StatusConflict, "Username already exists")
	default:
		fail(c, http.StatusInternalServerError, "Moderator creation failed")
	}
}

// DeleteAdmin godoc
// @ID          deleteAdmin
// @Summary     Delete an admin account
// @Description Superadmin only. Hard delete; self-deletion is permitted.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
// @Param       username  path  string  true  "Username to delete"
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Only superadmins can delete admins"
// @Failure     404  {object}  handlers.ErrorResponse  "Admin not found"
// @Router      /admin/delete/{username} [delete]
func (h *Handlers) DeleteAdmin(c *gin.Context) {
	username := c.Param("username")
	err := h.adminSvc.Delete(c.Request.Context(), username)
	switch {
	case err == nil:
		ok(c, http.StatusOK, fmt.Sprintf("Admin '%s' deleted", username), nil)
	case errors.Is(err, services.ErrAdminNotFound):
		fail(c, http.StatusNotFound, "Admin not found")
	default:
		fail(c, http.StatusInternalServerError, "Admin deletion failed")
	}
}
