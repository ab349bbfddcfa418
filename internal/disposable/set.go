package disposable

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Set is an immutable set of disposable email domains.
// It is never written after NewSet returns and is safe for concurrent use.
type Set struct {
	domains map[string]struct{}
	logger  *zap.Logger
}

// NewSet creates a new disposable domain set
func NewSet(domains []string, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Normalize domains (lowercase, trimmed, no blanks)
	normalized := make(map[string]struct{}, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		normalized[domain] = struct{}{}
	}

	logger.Info("Initialized disposable domain set", zap.Int("count", len(normalized)))

	return &Set{
		domains: normalized,
		logger:  logger,
	}
}

// Contains reports whether domain is in the set, ignoring case
func (s *Set) Contains(domain string) bool {
	_, ok := s.domains[strings.ToLower(domain)]
	if ok {
		s.logger.Debug("Domain is disposable", zap.String("domain", domain))
	}
	return ok
}

// Len returns the number of domains in the set
func (s *Set) Len() int {
	return len(s.domains)
}

// Sorted returns the domains in lexical order. The returned slice is a copy.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.domains))
	for domain := range s.domains {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}
