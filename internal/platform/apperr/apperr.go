// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for Ripple.

It provides a rich error type that bridges the gap between collaborator
failures (auth service, post service, session storage) and the state the
presentation layer renders.

Architecture:

  - AppError: A struct containing a machine-readable Code and user-friendly message.
  - Mapping: The Code/HTTPStatus pair mirrors the backend API contract, so a
    remote implementation of the collaborators can translate responses 1:1.
  - Recovery: Errors surface as distinguishable values on store state; they are
    never panics that could take down the session.

Every error that leaves a service should be wrapped as an [AppError] so callers
can branch on the failure kind without string matching.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Ripple client core.
//
// It carries the backend HTTP status the failure corresponds to, a
// machine-readable code, a message safe to render, and an optional slice of
// field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never rendered, to avoid leaking
// transport-level detail into the UI.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to render to the viewer.
	Message string `json:"error"`
	// HTTPStatus is the backend status code this failure corresponds to.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR failures.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the renderable message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Failure Kinds

// NotFound creates a NOT_FOUND [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Post") // Returns "Post not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates an UNAUTHORIZED [AppError] (invalid credentials).
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Conflict creates a CONFLICT [AppError] for duplicate identities
// (username or email already taken).
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a VALIDATION_ERROR [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Unavailable creates an UNAVAILABLE [AppError] wrapping a transport-level
// failure. Any collaborator call that fails without a more specific
// classification is reported through this kind.
func Unavailable(msg string, cause error) *AppError {
	return &AppError{
		Code:       "UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected failure.
// The cause is stored for logging but is never rendered.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}

// IsUnauthorized reports whether err carries the UNAUTHORIZED code.
func IsUnauthorized(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "UNAUTHORIZED"
}

// IsConflict reports whether err carries the CONFLICT code.
func IsConflict(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "CONFLICT"
}

// Wrap classifies an arbitrary collaborator failure.
//
// If err is already an [*AppError] it is returned unchanged; otherwise it is
// wrapped as [Unavailable] with the provided message.
func Wrap(err error, msg string) *AppError {
	if err == nil {
		return nil
	}
	if ae := As(err); ae != nil {
		return ae
	}
	return Unavailable(fmt.Sprintf("%s: request failed", msg), err)
}
