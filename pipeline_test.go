package rediswire

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rediswire/rediswire/internal/testutils"
	"github.com/rediswire/rediswire/resp"
)

var errEncodeRefused = errors.New("encode refused")

func pingCommand() *resp.Command {
	return resp.NewCommand(resp.CmdPing, nil)
}

func getCommand(key string) *resp.Command {
	return resp.NewCommand(resp.CmdGet, resp.NewArgs(resp.StringCodec{}).AddKey(key))
}

func TestPipelineWriterAutoFlush(t *testing.T) {
	conn := testutils.NewConnectionMock()
	w := NewPipelineWriter(conn)

	cmd := w.Write(getCommand("foo"))

	require.Equal(t, "*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n", conn.Written())
	require.True(t, cmd.Done(), "auto-flushed command completes on write")
	require.NoError(t, cmd.Err())
}

func TestPipelineWriterBatchesUntilFlush(t *testing.T) {
	conn := testutils.NewConnectionMock()
	w := NewPipelineWriter(conn)
	w.SetAutoFlush(false)

	first := w.Write(getCommand("a"))
	second := w.Write(getCommand("b"))

	require.Empty(t, conn.Written(), "nothing reaches the transport before Flush")
	require.False(t, first.Done())
	require.False(t, second.Done())

	w.Flush()

	require.Equal(t,
		"*2\r\n$3\r\nGET\r\n$1\r\na\r\n*2\r\n$3\r\nGET\r\n$1\r\nb\r\n",
		conn.Written())
	require.True(t, first.Done())
	require.True(t, second.Done())
	require.NoError(t, first.Err())
	require.NoError(t, second.Err())
}

func TestPipelineWriterWriteFailure(t *testing.T) {
	conn := testutils.NewConnectionMock()
	conn.FailWrites()
	w := NewPipelineWriter(conn)

	cmd := w.Write(pingCommand())

	var connErr *ConnectionError
	require.ErrorAs(t, cmd.Err(), &connErr)
	require.ErrorIs(t, cmd.Err(), testutils.ErrWriteRefused)
}

func TestPipelineWriterEncodeFailureCompletesCommand(t *testing.T) {
	conn := testutils.NewConnectionMock()
	w := NewPipelineWriter(conn)

	cmd := w.Write(resp.NewCommand(resp.CmdGet, failingArgs{}))

	require.True(t, cmd.Done())
	require.Error(t, cmd.Err())
	require.Empty(t, conn.Written())
}

func TestPipelineWriterResetDiscardsPending(t *testing.T) {
	conn := testutils.NewConnectionMock()
	w := NewPipelineWriter(conn)
	w.SetAutoFlush(false)

	cmd := w.Write(getCommand("a"))
	w.Reset()

	require.ErrorIs(t, cmd.Err(), ErrConnectionReset)
	require.Empty(t, conn.Written(), "reset discards buffered bytes")

	// The writer remains usable after a reset.
	w.SetAutoFlush(true)
	next := w.Write(pingCommand())
	require.NoError(t, next.Err())
	require.Equal(t, "*1\r\n$4\r\nPING\r\n", conn.Written())
}

func TestPipelineWriterClose(t *testing.T) {
	conn := testutils.NewConnectionMock()
	w := NewPipelineWriter(conn)
	w.SetAutoFlush(false)

	pending := w.Write(getCommand("a"))

	require.NoError(t, w.Close())
	require.True(t, conn.Closed())
	require.ErrorIs(t, pending.Err(), ErrWriterClosed)

	// Double close is a no-op.
	require.NoError(t, w.Close())
	require.Equal(t, 1, conn.CloseCalls())

	late := w.Write(pingCommand())
	require.ErrorIs(t, late.Err(), ErrWriterClosed)
}

func TestPipelineWriterWithHandler(t *testing.T) {
	conn := testutils.NewConnectionMock()
	h := NewChannelHandler(NewPipelineWriter(conn), time.Second)

	cmd := h.Dispatch(getCommand("k"))
	require.NoError(t, cmd.Wait(context.Background()))
	require.Equal(t, "*2\r\n$3\r\nGET\r\n$1\r\nk\r\n", conn.Written())

	require.NoError(t, h.Close())
	require.True(t, conn.Closed())
}

// failingArgs forces an encode error through the command framing.
type failingArgs struct{}

func (failingArgs) Count() int { return 1 }
func (failingArgs) Encode(buf *bytes.Buffer) error {
	return errEncodeRefused
}
