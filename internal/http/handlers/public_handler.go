// Guest-facing HTTP handlers.
//
// This file exposes the anonymous public surface:
//   - POST /api/session                  (issue an anonymous session id)
//   - GET  /api/confessions              (list active confessions)
//   - POST /api/confessions              (submit a confession)
//   - POST /api/confessions/{id}/react   (emoji reaction)
//   - POST /api/confessions/{id}/report  (file a report)
//   - POST /api/feedback                 (free-form feedback)
//
// Guests are identified by the X-Session-ID header. The confession POST
// supports safe retries: when the client repeats a request with the same
// Submission-Key, the stored confession is served instead of a duplicate
// being created.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/confessly/go-confessly-backend/internal/http/middleware"
	"github.com/confessly/go-confessly-backend/internal/repo"
	"github.com/confessly/go-confessly-backend/internal/services"
	"github.com/confessly/go-confessly-backend/internal/utils"
)

//
// DTOs
//

// CreateConfessionRequest is the JSON payload for submitting a confession.
type CreateConfessionRequest struct {
	Body string `json:"body" example:"i still sleep with a nightlight"`
	Mood string `json:"mood" example:"happy"`
}

// ReactRequest is the JSON payload for an emoji reaction.
type ReactRequest struct {
	Emoji string `json:"emoji" example:"heart"`
}

// ReportRequest is the JSON payload for reporting a confession.
type ReportRequest struct {
	Reason string `json:"reason" example:"spam"`
}

// FeedbackRequest is the JSON payload for free-form feedback.
type FeedbackRequest struct {
	Content string `json:"content" example:"love this app"`
}

// sessionID extracts the anonymous session header.
func sessionID(c *gin.Context) string {
	return c.GetHeader(middleware.HeaderSessionID)
}

//
// Handlers
//

// StartSession godoc
// @ID          startSession
// @Summary     Issue an anonymous session
// @Description Returns a fresh session id the client sends back in X-Session-ID.
// @Tags        Public
// @Produce     json
// @Success     201  {object}  handlers.SuccessResponse{data=domain.Session}
// @Router      /session [post]
func (h *Handlers) StartSession(c *gin.Context) {
	s, err := h.sessSvc.Start(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Session creation failed")
		return
	}
	ok(c, http.StatusCreated, "Session created", s)
}

// Feed page size bounds for the public listing.
const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// ListConfessions godoc
// @ID          listConfessions
// @Summary     List active confessions
// @Description Newest first. Soft-deleted and expired confessions never appear. An optional limit query caps the page size (default 50, max 200).
// @Tags        Public
// @Produce     json
// @Param       limit  query  int  false  "Maximum confessions to return"
// @Success     200  {object}  handlers.SuccessResponse{data=[]domain.Confession}
// @Router      /confessions [get]
func (h *Handlers) ListConfessions(c *gin.Context) {
	out, err := h.confSvc.ListActive(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Confession listing failed")
		return
	}
	limit := utils.ClampLimit(utils.AtoiDefault(c.Query("limit"), defaultFeedLimit), defaultFeedLimit, maxFeedLimit)
	if len(out) > limit {
		out = out[:limit]
	}
	ok(c, http.StatusOK, "Confessions fetched", out)
}

// CreateConfession godoc
// @ID          createConfession
// @Summary     Submit a confession
// @Description Requires X-Session-ID. An optional Submission-Key header makes the request safely retryable: repeats return the stored confession instead of creating another.
// @Tags        Public
// @Accept      json
// @Produce     json
// @Param       X-Session-ID    header  string  true   "Anonymous session id"
// @Param       Submission-Key  header  string  false  "Client retry key"
// @Param       body            body    handlers.CreateConfessionRequest  true  "Confession payload"
// @Success     201  {object}  handlers.SuccessResponse{data=domain.Confession}
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /confessions [post]
func (h *Handlers) CreateConfession(c *gin.Context) {
	sid := sessionID(c)
	if sid == "" {
		fail(c, http.StatusBadRequest, "Missing session ID")
		return
	}

	ctx := c.Request.Context()
	key, hasKey := middleware.SubmissionKey(c)

	// Serve the stored result when this (session, key) pair already went
	// through.
	if hasKey && middleware.IsReplay(c) {
		rec, err := repo.GetReceipt(ctx, h.DB, sid, key, time.Now().UTC())
		if err == nil {
			if conf, err := repo.GetConfession(ctx, h.DB, rec.ConfessionID); err == nil {
				ok(c, rec.Status, "Confession submitted", conf)
				return
			}
		}
		// Receipt expired or confession reaped between lookup and now;
		// fall through and create normally.
	}

	var req CreateConfessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Confession body required")
		return
	}

	conf, err := h.confSvc.Create(ctx, sid, req.Body, req.Mood)
	switch {
	case err == nil:
		if hasKey {
			// A duplicate receipt means a concurrent retry won; either
			// way the confession exists, so the error is ignored.
			_, _ = repo.CreateReceipt(ctx, h.DB, sid, key, conf.ID, http.StatusCreated, h.ReceiptTTL)
		}
		ok(c, http.StatusCreated, "Confession submitted", conf)
	case errors.Is(err, services.ErrEmptyBody):
		fail(c, http.StatusBadRequest, "Confession body required")
	case errors.Is(err, services.ErrBodyTooLong):
		fail(c, http.StatusBadRequest, "Confession too long")
	case errors.Is(err, services.ErrSessionNotFound):
		fail(c, http.StatusNotFound, "Session not found")
	default:
		fail(c, http.StatusInternalServerError, "Confession submission failed")
	}
}

// ReactToConfession godoc
// @ID          reactToConfession
// @Summary     React to a confession
// @Description Emoji must be one of heart, laugh, sad, angry, relate. Repeat reactions from the same session do not inflate the visible counters.
// @Tags        Public
// @Accept      json
// @Produce     json
// @Param       X-Session-ID  header  string  true  "Anonymous session id"
// @Param       id            path    string  true  "Confession ID"
// @Param       body          body    handlers.ReactRequest  true  "Reaction payload"
// @Success     200  {object}  handlers.SuccessResponse{data=domain.Confession}
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid emoji"
// @Failure     404  {object}  handlers.ErrorResponse  "Confession not found"
// @Router      /confessions/{id}/react [post]
func (h *Handlers) ReactToConfession(c *gin.Context) {
	sid := sessionID(c)
	if sid == "" {
		fail(c, http.StatusBadRequest, "Missing session ID")
		return
	}

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid emoji")
		return
	}

	conf, err := h.confSvc.React(c.Request.Context(), c.Param("id"), req.Emoji, sid)
	switch {
	case err == nil:
		ok(c, http.StatusOK, "Reaction recorded", conf)
	case errors.Is(err, services.ErrInvalidEmoji):
		fail(c, http.StatusBadRequest, "Invalid emoji")
	case errors.Is(err, services.ErrConfessionNotFound):
		fail(c, http.StatusNotFound, "Confession not found")
	default:
		fail(c, http.StatusInternalServerError, "Reaction failed")
	}
}

// ReportConfession godoc
// @ID          reportConfession
// @Summary     Report a confession
// @Tags        Public
// @Accept      json
// @Produce     json
// @Param       X-Session-ID  header  string  true  "Anonymous session id"
// @Param       id            path    string  true  "Confession ID"
// @Param       body          body    handlers.ReportRequest  true  "Report payload"
// @Success     201  {object}  handlers.SuccessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Report reason required"
// @Failure     404  {object}  handlers.ErrorResponse  "Confession not found"
// @Router      /confessions/{id}/report [post]
func (h *Handlers) ReportConfession(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Report reason required")
		return
	}

	_, err := h.fbSvc.Report(c.Request.Context(), sessionID(c), c.Param("id"), req.Reason)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, "Report submitted", nil)
	case errors.Is(err, services.ErrEmptyReason):
		fail(c, http.StatusBadRequest, "Report reason required")
	case errors.Is(err, services.ErrConfessionNotFound):
		fail(c, http.StatusNotFound, "Confession not found")
	default:
		fail(c, http.StatusInternalServerError, "Report submission failed")
	}
}

// SubmitFeedback godoc
// @ID          submitFeedback
// @Summary     Submit feedback
// @Tags        Public
// @Accept      json
// @Produce     json
// @Param       X-Session-ID  header  string  false  "Anonymous session id"
// @Param       body          body    handlers.FeedbackRequest  true  "Feedback payload"
// @Success     201  {object}  handlers.SuccessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Feedback content required"
// @Router      /feedback [post]
func (h *Handlers) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Feedback content required")
		return
	}

	_, err := h.fbSvc.Submit(c.Request.Context(), sessionID(c), req.Content)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, "Feedback submitted", nil)
	case errors.Is(err, services.ErrEmptyFeedback):
		fail(c, http.StatusBadRequest, "Feedback content required")
	default:
		fail(c, http.StatusInternalServerError, "Feedback submission failed")
	}
}
