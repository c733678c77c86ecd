package ragservice

import "errors"

// ErrEmptyQuestion rejects empty or whitespace-only input before any
// retrieval or generation work happens. It is a client error, not a
// service failure.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// RetrievalError wraps failures from the embed-and-search half of the
// pipeline (embedding provider down, index search failure).
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return "retrieval failed: " + e.Err.Error() }
func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError wraps failures from the generation provider. Kept
// distinct from RetrievalError so callers can report which stage broke.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }
