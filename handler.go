package rediswire

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rediswire/rediswire/resp"
)

// Writer submits commands for serialization and transport on behalf of a
// ChannelHandler. It owns queueing and backpressure; the handler only
// forwards. PipelineWriter is the provided implementation.
type Writer interface {
	// Write submits cmd and returns the same handle.
	Write(cmd *resp.Command) *resp.Command

	// Close releases the transport.
	Close() error

	// Reset discards any in-flight pipelined state, failing queued
	// commands. Used on reconnect.
	Reset()

	// SetAutoFlush controls whether written commands reach the transport
	// immediately or are batched until Flush.
	SetAutoFlush(autoFlush bool)

	// Flush pushes batched commands to the transport.
	Flush()

	// Bind attaches the owning handler. Called once from NewChannelHandler.
	Bind(h *ChannelHandler)
}

// ChannelHandler tracks the lifecycle of one logical connection and
// forwards commands to its writer. The transport layer reports lifecycle
// transitions through Registered, Activated and Deactivated; applications
// and the transport may both call Close, which is idempotent.
//
// The activity flags are independent: IsOpen reflects transport liveness,
// IsClosed the terminal state of this logical connection. During reconnect
// windows a handler can be neither open nor closed.
type ChannelHandler struct {
	writer  Writer
	timeout atomic.Int64 // nanoseconds

	active atomic.Bool
	closed atomic.Bool

	// closeMu serializes the closed-state transition and listener firing.
	closeMu sync.Mutex
	events  closeEvents
}

// NewChannelHandler creates a handler owning the given writer and binds
// itself to it. The handler starts active with the given command timeout.
// It panics if writer is nil.
func NewChannelHandler(writer Writer, timeout time.Duration) *ChannelHandler {
	if writer == nil {
		panic("rediswire: writer must not be nil")
	}
	h := &ChannelHandler{writer: writer}
	h.timeout.Store(int64(timeout))
	h.active.Store(true)
	writer.Bind(h)
	return h
}

// Registered is the transport notification that a channel was registered
// for this handler. A registration after a close is a reconnection event.
func (h *ChannelHandler) Registered() {
	h.closed.Store(false)
}

// Activated is the transport notification that the connection is usable.
func (h *ChannelHandler) Activated() {
	h.active.Store(true)
	h.closed.Store(false)
}

// Deactivated is the transport notification of a disconnect. It is not
// terminal; a later Activated returns the handler to the open state.
func (h *ChannelHandler) Deactivated() {
	h.active.Store(false)
}

// IsOpen reports whether the connection is active.
func (h *ChannelHandler) IsOpen() bool {
	return h.active.Load()
}

// IsClosed reports whether the handler reached its terminal state.
func (h *ChannelHandler) IsClosed() bool {
	return h.closed.Load()
}

// Close transitions the handler to closed, closes the writer and fires all
// registered close listeners exactly once. A second Close is a logged
// no-op. Close never returns an error; writer-close failures are absorbed.
//
// Listeners fire after the mutex is released, so a listener that reaches
// back into Close, directly or through a registered resource wrapping this
// handler, lands on the idempotent path instead of deadlocking. The closed
// transition is monotonic under the mutex, so only the transitioning caller
// fires the listeners.
func (h *ChannelHandler) Close() error {
	h.closeMu.Lock()
	if h.closed.Load() {
		h.closeMu.Unlock()
		logger().Warn("connection is already closed")
		return nil
	}

	h.active.Store(false)
	h.closed.Store(true)

	if err := h.writer.Close(); err != nil {
		logger().Debug("closing writer", "error", err)
	}
	h.closeMu.Unlock()

	h.events.fire(h)
	return nil
}

// Dispatch forwards cmd to the writer and returns the same handle. No
// validation happens here; the writer owns queueing semantics.
func (h *ChannelHandler) Dispatch(cmd *resp.Command) *resp.Command {
	logger().Debug("dispatching command", "type", cmd.Type())
	return h.writer.Write(cmd)
}

// AddListener registers a close listener for the next close event.
func (h *ChannelHandler) AddListener(l CloseListener) {
	h.events.addListener(l)
}

// RegisterCloseables tracks the given resources in registry and arranges
// for them to be closed when this handler closes. The handler itself is
// skipped if listed. Each resource is closed independently: one failure is
// logged and does not prevent closing the others. After cleanup the
// resources are removed from the registry.
func (h *ChannelHandler) RegisterCloseables(registry *CloseableRegistry, closeables ...io.Closer) {
	registry.Add(closeables...)

	h.AddListener(func(*ChannelHandler) {
		for _, c := range closeables {
			if hc, ok := c.(*ChannelHandler); ok && hc == h {
				continue
			}
			if err := c.Close(); err != nil {
				logger().Debug("closing resource", "error", err)
			}
		}
		registry.Remove(closeables...)
	})
}

// SetTimeout sets the command timeout for this connection.
func (h *ChannelHandler) SetTimeout(timeout time.Duration) {
	h.timeout.Store(int64(timeout))
}

// Timeout returns the configured command timeout.
func (h *ChannelHandler) Timeout() time.Duration {
	return time.Duration(h.timeout.Load())
}

// Writer returns the owned writer.
func (h *ChannelHandler) Writer() Writer {
	return h.writer
}

// SetAutoFlush passes the auto-flush setting through to the writer.
func (h *ChannelHandler) SetAutoFlush(autoFlush bool) {
	h.writer.SetAutoFlush(autoFlush)
}

// Flush pushes batched commands through to the transport.
func (h *ChannelHandler) Flush() {
	h.writer.Flush()
}

// Reset discards the writer's in-flight pipelined state.
func (h *ChannelHandler) Reset() {
	h.writer.Reset()
}
