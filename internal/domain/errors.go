// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a unit, lesson or shop item id is unknown.
	// Absence is an expected condition (for example a stale link), so callers
	// usually treat it as a no-op state rather than a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrNegativeAmount is returned when a reward or price is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidTransition is returned when a learner action is out of sequence,
	// e.g. completing a lesson whose predecessor is still incomplete.
	ErrInvalidTransition = errors.New("invalid progress transition")

	// ErrConcurrentModification is returned when another writer published a new
	// state between the read and the publish of a transaction.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)
