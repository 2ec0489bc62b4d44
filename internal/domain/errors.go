// Package domain holds the vocabulary shared by the board services and their transports:
// the error taxonomy, room names and event names.
package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument signals malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden signals that the actor lacks the ownership or membership the action needs.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals a uniqueness violation.
	ErrConflict = errors.New("conflict")
)
