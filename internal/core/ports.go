package core

// DomainSet is the read-only set of disposable domains the classifier checks against
type DomainSet interface {
	// Contains reports whether the domain is in the set, ignoring case
	Contains(domain string) bool

	// Len returns the number of domains in the set
	Len() int

	// Sorted returns the domains in lexical order
	Sorted() []string
}
