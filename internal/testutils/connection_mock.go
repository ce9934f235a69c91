package testutils

import (
	"bytes"
	"errors"
	"net"
	"sync"
	"time"
)

// ErrWriteRefused is returned by a ConnectionMock configured to fail writes.
var ErrWriteRefused = errors.New("write refused")

// ConnectionMock is a mock implementation of net.Conn for testing writers.
type ConnectionMock struct {
	mu         sync.Mutex
	readBuf    bytes.Buffer
	writeBuf   bytes.Buffer
	closed     bool
	closeCalls int
	failWrites bool
}

// NewConnectionMock creates a mock connection with optional pre-configured
// response data.
func NewConnectionMock(responseData ...string) *ConnectionMock {
	m := &ConnectionMock{}
	for _, data := range responseData {
		m.readBuf.WriteString(data)
	}
	return m
}

func (m *ConnectionMock) Read(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readBuf.Read(b)
}

func (m *ConnectionMock) Write(b []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return 0, ErrWriteRefused
	}
	return m.writeBuf.Write(b)
}

func (m *ConnectionMock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCalls++
	return nil
}

func (m *ConnectionMock) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0}
}

func (m *ConnectionMock) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6379}
}

func (m *ConnectionMock) SetDeadline(t time.Time) error      { return nil }
func (m *ConnectionMock) SetReadDeadline(t time.Time) error  { return nil }
func (m *ConnectionMock) SetWriteDeadline(t time.Time) error { return nil }

// FailWrites makes every subsequent Write return ErrWriteRefused.
func (m *ConnectionMock) FailWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = true
}

// Written returns the raw request bytes written so far.
func (m *ConnectionMock) Written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeBuf.String()
}

// Closed reports whether Close was called.
func (m *ConnectionMock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// CloseCalls returns how many times Close was called.
func (m *ConnectionMock) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}
