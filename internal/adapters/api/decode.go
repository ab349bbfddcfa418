package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mikey/email-classifier/internal/core"
)

// MaxBodyBytes bounds the size of a batch request body
const MaxBodyBytes = 1 << 20

var (
	// ErrInvalidPayload is returned when a batch body is not a JSON array or object
	ErrInvalidPayload = errors.New("invalid JSON payload")
	// ErrBodyTooLarge is returned when a request body exceeds MaxBodyBytes
	ErrBodyTooLarge = errors.New("request body too large")
)

// ReadBody reads at most MaxBodyBytes from r
func ReadBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

// DecodeBatch parses a batch body: either a JSON array of emails or an object
// with an "emails" array. Entries that are not JSON strings become candidates
// carrying core.ErrNotAString. The raw entries are returned alongside, by index.
func DecodeBatch(body []byte) ([]core.Candidate, []json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil, core.ErrEmptyBatch
	}

	var entries []json.RawMessage
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	case '{':
		var wrapper struct {
			Emails []json.RawMessage `json:"emails"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		entries = wrapper.Emails
	default:
		return nil, nil, fmt.Errorf("%w: expected array or object", ErrInvalidPayload)
	}

	if len(entries) == 0 {
		return nil, nil, core.ErrEmptyBatch
	}

	candidates := make([]core.Candidate, len(entries))
	for i, raw := range entries {
		var email string
		if err := json.Unmarshal(raw, &email); err != nil || bytes.Equal(raw, []byte("null")) {
			candidates[i] = core.Candidate{
				Email: string(raw),
				Err:   fmt.Errorf("entry %d: %w", i, core.ErrNotAString),
			}
			continue
		}
		candidates[i] = core.Candidate{Email: email}
	}

	return candidates, entries, nil
}
