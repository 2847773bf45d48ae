// Moderation HTTP handlers.
//
// This file exposes the content-management endpoints of the admin surface:
//   - GET    /api/admin/dashboard          (totals + newest confessions)
//   - GET    /api/admin/feedback           (all feedback, newest first)
//   - GET    /api/admin/reports            (all reports, newest first)
//   - GET    /api/admin/health             (DB size, tables, server time)
//   - DELETE /api/admin/confessions/{id}   (soft delete)
//   - GET    /api/admin/search             (filter by mood and status)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confessly/go-confessly-backend/internal/services"
)

// Dashboard godoc
// @ID          adminDashboard
// @Summary     Dashboard summary
// @Description Record totals plus the five newest confessions regardless of status.
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=services.DashboardSummary}
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	sum, err := h.confSvc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Dashboard summary failed")
		return
	}
	ok(c, http.StatusOK, "Dashboard summary fetched", sum)
}

// ViewFeedback godoc
// @ID          adminFeedback
// @Summary     List all feedback
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Feedback}
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/feedback [get]
func (h *Handlers) ViewFeedback(c *gin.Context) {
	out, err := h.fbSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Feedback listing failed")
		return
	}
	ok(c, http.StatusOK, "Feedback fetched successfully", out)
}

// ViewReports godoc
// @ID          adminReports
// @Summary     List all reports
// @Description An empty report log yields an empty list, not an error.
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Report}
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/reports [get]
func (h *Handlers) ViewReports(c *gin.Context) {
	out, err := h.fbSvc.ListReports(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Report listing failed")
		return
	}
	ok(c, http.StatusOK, "Reports fetched successfully", out)
}

// SystemHealth godoc
// @ID          adminHealth
// @Summary     System health snapshot
// @Description Database size in MB, table inventory, and current server time.
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SuccessResponse{data=services.HealthReport}
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /admin/health [get]
func (h *Handlers) SystemHealth(c *gin.Context) {
	rep, err := h.confSvc.Health(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Health check failed: "+err.Error())
		return
	}
	ok(c, http.StatusOK, "System healthy", rep)
}

// DeleteConfession godoc
// @ID          deleteConfession
// @Summary     Soft-delete a confession
// @Description Transitions active → deleted. Repeat deletes report 404; there is no restore.
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Param       id  path  string  true  "Confession ID"
// @Success     200  {object}  handlers.SuccessResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Confession not found"
// @Router      /admin/confessions/{id} [delete]
func (h *Handlers) DeleteConfession(c *gin.Context) {
	err := h.confSvc.SoftDelete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Confession deleted successfully", nil)
	case errors.Is(err, services.ErrConfessionNotFound):
		fail(c, http.StatusNotFound, "Confession not found")
	default:
		fail(c, http.StatusInternalServerError, "Confession deletion failed")
	}
}

// SearchConfessions godoc
// @ID          searchConfessions
// @Summary     Search confessions
// @Description Filters by mood (caseless, empty matches all) AND status (defaults to active). Newest first.
// @Tags        Moderation
// @Produce     json
// @Security    BearerAuth
// @Param       mood    query  string  false  "Mood filter"
// @Param       status  query  string  false  "Status filter"  Enums(active, deleted)
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Confession}
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /admin/search [get]
func (h *Handlers) SearchConfessions(c *gin.Context) {
	out, err := h.confSvc.Search(c.Request.Context(), c.Query("mood"), c.Query("status"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Confession search failed")
		return
	}
	ok(c, http.StatusOK, "Confessions search results", out)
}
