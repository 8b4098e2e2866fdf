// Package pipeline defines the typed error kinds the stages report, so the
// HTTP layer can map failures to responses without string matching.
package pipeline

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindIngestion: chunking produced nothing, or embedding/indexing a
	// batch failed.
	KindIngestion Kind = iota
	// KindRetrieval: the vector index is unreachable or returned garbage.
	// Never conflated with an empty result set.
	KindRetrieval
	// KindGeneration: the LLM was unreachable or timed out. Recovered with
	// a fallback answer that still carries the retrieved sources.
	KindGeneration
	// KindValidation: a required request field is missing.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindIngestion:
		return "ingestion"
	case KindRetrieval:
		return "retrieval"
	case KindGeneration:
		return "generation"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error wraps a stage failure with its kind and the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the kind from err, or ok=false for untyped errors.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
