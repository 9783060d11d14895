package core

import (
	"errors"
	"fmt"
	"log"
)

// Sentinel errors surfaced to callers. The API layer maps these to HTTP
// status codes; they are never retried.
var (
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexCorrupt signals an internal invariant violation in the
	// semantic index, such as an embedding dimension mismatch. Fatal for
	// the operation that hit it.
	ErrIndexCorrupt = errors.New("semantic index corrupt")
)

// EmbeddingError wraps a failure of the embedding gateway.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding request failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError wraps a failure of the generation gateway, including
// timeouts and rate limits.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// FailureRecorder is the narrow interface to the observability collaborator.
// Every degraded path reports through it; nothing is swallowed silently.
type FailureRecorder interface {
	RecordFailure(kind string, context string, err error)
}

// LogFailureRecorder records failures on the process logger.
type LogFailureRecorder struct{}

func (LogFailureRecorder) RecordFailure(kind string, context string, err error) {
	log.Printf("failure kind=%s context=%s err=%v", kind, context, err)
}
