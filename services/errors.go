package services

import "errors"

// Common service-level errors
var (
	// ErrPostNotFound is returned when an edit targets an id that is not stored
	ErrPostNotFound = errors.New("post not found")
)
