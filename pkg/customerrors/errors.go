// Package customerrors defines errors shared by the list and the pipeline
// stages built on top of it.
package customerrors

import (
	"errors"
)

var (
	// ErrInvariantViolation is raised when a caller breaks a list
	// precondition: pushing a unit that is already linked, or removing a
	// unit that is not a member of the receiving list. It is also reported
	// when a list walk finds mismatched links.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrNotFound is returned by the pipeline when a frame it needs, such as
	// a reference picture, is no longer buffered.
	ErrNotFound = errors.New("not found")

	// ErrOutOfOrder is returned when a frame is pushed with a POC that does
	// not follow the previously pushed one.
	ErrOutOfOrder = errors.New("frame out of display order")

	// ErrClosed is returned when frames are pushed into a flushed pipeline.
	ErrClosed = errors.New("pipeline closed")
)
