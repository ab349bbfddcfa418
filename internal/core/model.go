package core

import "errors"

var (
	// ErrEmptyEmail is returned when a single verification is requested without an address
	ErrEmptyEmail = errors.New("email parameter required")
	// ErrEmptyBatch is returned when a batch contains no entries
	ErrEmptyBatch = errors.New("email list cannot be empty")
	// ErrNoAtSign is returned when a domain is extracted from a string without '@'
	ErrNoAtSign = errors.New("email has no @ sign")
	// ErrNotAString is set on batch candidates that were not decoded as strings
	ErrNotAString = errors.New("batch entry is not a string")
)

// Score values
const (
	ScoreInvalid    = 0
	ScoreDisposable = 30
	ScoreValid      = 100
)

// ClassificationResult is the verdict for a single email address
type ClassificationResult struct {
	// Email is the input, unmodified
	Email       string
	ValidFormat bool
	// Domain is the lowercased part after the first '@'. Empty unless ValidFormat.
	Domain     string
	Disposable bool
	Score      int
}

// Candidate is one entry of a batch request.
// Err is set when the entry could not be read as an email string.
type Candidate struct {
	Email string
	Err   error
}

// BatchItem is the outcome for one batch entry: either a result or a per-item error
type BatchItem struct {
	Result ClassificationResult
	Err    error
}

// Failed reports whether the entry could not be classified
func (b BatchItem) Failed() bool {
	return b.Err != nil
}
