// Package services defines the business logic for admin identity,
// confessions, reactions, feedback, and anonymous sessions. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Admin identity errors.
var (
	// ErrMissingFields is returned when a registration or login request
	// omits a required field.
	ErrMissingFields = errors.New("missing required fields")

	// ErrAdminExists indicates that the requested username is already taken.
	ErrAdminExists = errors.New("admin already exists")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// password mismatches so callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAdminNotFound indicates that the requested admin account does
	// not exist.
	ErrAdminNotFound = errors.New("admin not found")
)

// Confession and reaction errors.
var (
	// ErrConfessionNotFound indicates the confession does not exist or is
	// no longer active.
	ErrConfessionNotFound = errors.New("confession not found")

	// ErrEmptyBody is returned when a confession submission has no text.
	ErrEmptyBody = errors.New("confession body is empty")

	// ErrBodyTooLong is returned when a confession exceeds the configured
	// maximum length.
	ErrBodyTooLong = errors.New("confession body too long")

	// ErrInvalidEmoji is returned when a reaction names an emoji outside
	// the fixed vocabulary.
	ErrInvalidEmoji = errors.New("invalid emoji")
)

// Feedback and report errors.
var (
	// ErrEmptyFeedback is returned when a feedback submission has no text.
	ErrEmptyFeedback = errors.New("feedback content is empty")

	// ErrEmptyReason is returned when a report carries no reason.
	ErrEmptyReason = errors.New("report reason is empty")
)

// Session errors.
var (
	// ErrSessionNotFound indicates the anonymous session id is unknown or
	// has been reaped.
	ErrSessionNotFound = errors.New("session not found")
)
