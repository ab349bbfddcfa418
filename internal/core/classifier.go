package core

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is anchored at both ends: trailing content after a valid-looking
// address (including a newline) fails validation.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateFormat reports whether email matches the accepted address pattern
func ValidateFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// ExtractDomain returns the lowercased substring after the first '@'
func ExtractDomain(email string) (string, error) {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return "", fmt.Errorf("extract domain from %q: %w", email, ErrNoAtSign)
	}
	return strings.ToLower(domain), nil
}

// Score maps the two checks onto the fixed score table
func Score(validFormat, disposable bool) int {
	switch {
	case !validFormat:
		return ScoreInvalid
	case disposable:
		return ScoreDisposable
	default:
		return ScoreValid
	}
}

// Classifier classifies email addresses against a disposable domain set
type Classifier struct {
	domains DomainSet
}

// NewClassifier creates a new classifier
func NewClassifier(domains DomainSet) *Classifier {
	return &Classifier{domains: domains}
}

// IsDisposable reports whether domain is a disposable domain, ignoring case
func (c *Classifier) IsDisposable(domain string) bool {
	return c.domains.Contains(strings.ToLower(domain))
}

// Classify returns the verdict for a single address. It is defined for every string.
func (c *Classifier) Classify(email string) ClassificationResult {
	result := ClassificationResult{Email: email}
	if !ValidateFormat(email) {
		return result
	}

	domain, err := ExtractDomain(email)
	if err != nil {
		return result
	}

	result.ValidFormat = true
	result.Domain = domain
	result.Disposable = c.IsDisposable(domain)
	result.Score = Score(result.ValidFormat, result.Disposable)
	return result
}

// ClassifyBatch classifies each address independently, keeping input order and count
func (c *Classifier) ClassifyBatch(emails []string) ([]ClassificationResult, error) {
	if len(emails) == 0 {
		return nil, ErrEmptyBatch
	}

	results := make([]ClassificationResult, len(emails))
	for i, email := range emails {
		results[i] = c.Classify(email)
	}
	return results, nil
}

// Domains returns the disposable domain set in lexical order
func (c *Classifier) Domains() []string {
	return c.domains.Sorted()
}

// DomainCount returns the size of the disposable domain set
func (c *Classifier) DomainCount() int {
	return c.domains.Len()
}
