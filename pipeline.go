package rediswire

import (
	"bufio"
	"bytes"
	"net"
	"sync"

	"github.com/rediswire/rediswire/resp"
)

// PipelineWriter is a Writer that serializes commands onto a net.Conn. With
// auto-flush enabled (the default) every command is flushed to the
// transport as it is written; with auto-flush disabled commands accumulate
// in the write buffer until Flush, which is how callers pipeline.
//
// Commands complete once their bytes have been handed to the transport.
// Response decoding is a separate concern layered by the transport owner.
type PipelineWriter struct {
	conn net.Conn

	mu        sync.Mutex
	bw        *bufio.Writer
	buf       bytes.Buffer // per-command encode scratch
	autoFlush bool
	pending   []*resp.Command // written but not yet flushed
	closed    bool
}

var _ Writer = (*PipelineWriter)(nil)

// NewPipelineWriter creates a writer over conn with auto-flush enabled.
func NewPipelineWriter(conn net.Conn) *PipelineWriter {
	return &PipelineWriter{
		conn:      conn,
		bw:        bufio.NewWriter(conn),
		autoFlush: true,
	}
}

// Bind attaches the owning handler. The pipeline writer has no use for it
// beyond satisfying the Writer contract.
func (w *PipelineWriter) Bind(h *ChannelHandler) {}

// Write encodes cmd into the write buffer. Encoding or transport failures
// complete the command with the failure; the same handle is returned either
// way.
func (w *PipelineWriter) Write(cmd *resp.Command) *resp.Command {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		cmd.CompleteWithError(ErrWriterClosed)
		return cmd
	}

	w.buf.Reset()
	if err := cmd.Encode(&w.buf); err != nil {
		cmd.CompleteWithError(err)
		return cmd
	}

	if _, err := w.bw.Write(w.buf.Bytes()); err != nil {
		cmd.CompleteWithError(&ConnectionError{Op: "write", Err: err})
		return cmd
	}

	if w.autoFlush {
		if err := w.bw.Flush(); err != nil {
			cmd.CompleteWithError(&ConnectionError{Op: "flush", Err: err})
			return cmd
		}
		cmd.Complete()
		return cmd
	}

	w.pending = append(w.pending, cmd)
	return cmd
}

// SetAutoFlush switches between immediate and batched flushing. Turning
// auto-flush back on does not flush already batched commands; call Flush.
func (w *PipelineWriter) SetAutoFlush(autoFlush bool) {
	w.mu.Lock()
	w.autoFlush = autoFlush
	w.mu.Unlock()
}

// Flush pushes batched commands to the transport and completes them.
func (w *PipelineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	err := w.bw.Flush()
	for _, cmd := range w.pending {
		if err != nil {
			cmd.CompleteWithError(&ConnectionError{Op: "flush", Err: err})
		} else {
			cmd.Complete()
		}
	}
	w.pending = nil
}

// Reset discards batched commands and the write buffer, completing the
// discarded commands with ErrConnectionReset.
func (w *PipelineWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, cmd := range w.pending {
		cmd.CompleteWithError(ErrConnectionReset)
	}
	w.pending = nil
	w.bw.Reset(w.conn)
}

// Close fails batched commands with ErrWriterClosed and closes the
// transport. Further writes fail immediately.
func (w *PipelineWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	for _, cmd := range w.pending {
		cmd.CompleteWithError(ErrWriterClosed)
	}
	w.pending = nil

	return w.conn.Close()
}
