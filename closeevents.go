package rediswire

import "sync"

// CloseListener is notified once when a connection handler closes. The
// closing handler is passed as the event payload.
type CloseListener func(h *ChannelHandler)

// closeEvents is a one-shot multicast registry of close listeners. Firing
// swaps the listener list out wholesale, so listeners registered before a
// close never see events from connections opened afterwards, and a
// registration racing an in-flight fire lands in the fresh list and is
// deferred to the next close.
type closeEvents struct {
	mu        sync.Mutex
	listeners []CloseListener
}

func (e *closeEvents) addListener(l CloseListener) {
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// fire invokes every registered listener in registration order, then leaves
// the registry empty. A panicking listener does not stop the rest.
func (e *closeEvents) fire(h *ChannelHandler) {
	e.mu.Lock()
	listeners := e.listeners
	e.listeners = nil
	e.mu.Unlock()

	for _, l := range listeners {
		fireListener(l, h)
	}
}

func fireListener(l CloseListener, h *ChannelHandler) {
	defer func() {
		if r := recover(); r != nil {
			logger().Warn("close listener panicked", "panic", r)
		}
	}()
	l(h)
}
