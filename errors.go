package rediswire

import (
	"errors"
	"fmt"
)

var (
	// ErrWriterClosed is the completion error for commands dispatched to a
	// writer that has been closed.
	ErrWriterClosed = errors.New("rediswire: writer closed")

	// ErrConnectionReset is the completion error for commands discarded by
	// a writer reset during reconnection.
	ErrConnectionReset = errors.New("rediswire: connection reset")

	// ErrNoServers is returned when a client has no server to route to.
	ErrNoServers = errors.New("rediswire: no servers available")

	// ErrInvalidPoolSize is returned when a client is configured with a
	// non-positive pool size.
	ErrInvalidPoolSize = errors.New("rediswire: pool size must be at least 1")
)

// ConnectionError wraps an underlying I/O error from transport operations,
// recording which operation failed.
type ConnectionError struct {
	Op  string // Operation that failed (write, flush, dial)
	Err error  // Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rediswire: connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
