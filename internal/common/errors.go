// Package common defines shared constants and sentinel errors used across
// the RentEase client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")

	// Resource errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)
