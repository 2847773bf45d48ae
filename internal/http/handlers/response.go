// Package handlers provides HTTP handler implementations for the public and
// admin API surfaces.
//
// This file defines the standard response envelopes used across all
// endpoints. Every success body is {"message": "...", "data": ...} with data
// omitted when there is nothing to return; every error body is
// {"error": "..."} with a human-readable message. Handlers never emit any
// other shape, which keeps the API predictable for the web client.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{ "error": "Confession not found" }
//
// Example success response:
//
//	HTTP/1.1 201 Created
//	{ "message": "Admin 'root' created successfully" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confessly/go-confessly-backend/internal/http/middleware"
)

// SuccessResponse is the standard success envelope returned by all
// endpoints. Data is omitted when the operation has no payload.
type SuccessResponse struct {
	// Human-readable outcome description
	Message string `json:"message" example:"Login successful"`
	// Optional payload; shape depends on the endpoint
	Data any `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable error message (safe to show to users)
	Error string `json:"error" example:"Invalid credentials"`
}

// fail aborts the request with the standard error envelope and logs
// server-side errors with the request-scoped logger.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Fail is the exported variant of fail(). External packages (e.g. router
// setup) call it to return consistent envelopes without depending on
// unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success envelope with the given status, message, and optional
// data payload.
func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessResponse{Message: message, Data: data})
}
