package resp

import (
	"bytes"
	"context"
	"errors"
)

// ArgsWriter is the view of an argument list the command framing needs.
// *Args satisfies it for any key/value type pair.
type ArgsWriter interface {
	Count() int
	Encode(buf *bytes.Buffer) error
}

// Command is a single request handle. It carries the command type and
// argument list for encoding, and a completion signal the transport layer
// closes once the command has been handed off. Callers block on Wait.
//
// A Command is written once and completed once; it is not reusable.
type Command struct {
	typ  CommandType
	args ArgsWriter

	ready chan struct{}
	err   error
}

// NewCommand creates a command of the given type. args may be nil for
// commands without arguments.
func NewCommand(typ CommandType, args ArgsWriter) *Command {
	return &Command{
		typ:   typ,
		args:  args,
		ready: make(chan struct{}),
	}
}

// Type returns the command type.
func (c *Command) Type() CommandType { return c.typ }

// Args returns the argument list, nil for argument-less commands.
func (c *Command) Args() ArgsWriter { return c.args }

// Encode writes the full request frame to buf: an array header covering the
// command type plus every argument, then the command type as a bulk string,
// then the encoded arguments.
func (c *Command) Encode(buf *bytes.Buffer) error {
	n := 1
	if c.args != nil {
		n += c.args.Count()
	}
	WriteArrayHeader(buf, n)
	WriteBulk(buf, c.typ.Bytes())
	if c.args != nil {
		return c.args.Encode(buf)
	}
	return nil
}

// Wait blocks until the command completes or ctx is done. It returns the
// command's completion error, or the context error if ctx wins.
func (c *Command) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-c.ready:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done reports whether the command has completed.
func (c *Command) Done() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Err returns the completion error. It is only meaningful after Done
// reports true or Wait returns.
func (c *Command) Err() error { return c.err }

// Complete marks the command as finished. Completing an already completed
// command is a no-op.
func (c *Command) Complete() {
	select {
	case <-c.ready:
	default:
		close(c.ready)
	}
}

// CompleteWithError marks the command as failed. The first completion wins.
func (c *Command) CompleteWithError(err error) {
	select {
	case <-c.ready:
	default:
		if err == nil {
			err = errors.New("rediswire: command failed with nil error")
		}
		c.err = err
		close(c.ready)
	}
}
