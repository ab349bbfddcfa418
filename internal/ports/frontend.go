package ports

// Frontend is a transport that exposes the classification service
type Frontend interface {
	// Name identifies the front end in logs
	Name() string

	// Start starts serving in the background
	Start() error

	// Stop stops serving, waiting for in-flight requests up to the configured timeout
	Stop() error
}
