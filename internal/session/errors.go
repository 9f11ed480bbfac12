package session

import "errors"

// Error kinds surfaced to the tool layer. Every failure is local and
// recoverable: the session stays valid for the next call and a rejected
// operation leaves the slide store and mutation log untouched.
var (
	// ErrValidation marks malformed input: bad style values, out-of-range
	// orders or times, unknown preset names.
	ErrValidation = errors.New("validation failed")

	// ErrState marks operations that are well-formed but not applicable to
	// the current state: split point outside the span, merging non-adjacent
	// slides, undo/redo at the end of history.
	ErrState = errors.New("invalid state")

	// ErrNotFound marks references to slides that are not in the deck.
	ErrNotFound = errors.New("not found")
)
