package rediswire

import (
	"context"
	"iter"
	"time"

	"github.com/rediswire/rediswire/resp"
)

// Conn is a typed, blocking command surface over a ChannelHandler. Each
// method builds the command with the connection's codec, dispatches it and
// waits for completion. The returned handle carries the completion state;
// response decoding is owned by the transport layer feeding the handler.
type Conn[K, V any] struct {
	handler *ChannelHandler
	codec   resp.Codec[K, V]
	sync    *SyncDispatcher
}

// Wrap builds a typed connection over h using codec.
// It panics if codec is nil.
func Wrap[K, V any](h *ChannelHandler, codec resp.Codec[K, V]) *Conn[K, V] {
	if codec == nil {
		panic("rediswire: codec must not be nil")
	}
	return &Conn[K, V]{
		handler: h,
		codec:   codec,
		sync:    NewSyncDispatcher(h),
	}
}

// Handler returns the underlying channel handler.
func (c *Conn[K, V]) Handler() *ChannelHandler { return c.handler }

// Close closes the underlying handler.
func (c *Conn[K, V]) Close() error { return c.handler.Close() }

func (c *Conn[K, V]) do(ctx context.Context, typ resp.CommandType, args *resp.Args[K, V]) (*resp.Command, error) {
	cmd := resp.NewCommand(typ, args)
	return cmd, c.sync.Dispatch(ctx, cmd)
}

// Get issues GET key.
func (c *Conn[K, V]) Get(ctx context.Context, key K) (*resp.Command, error) {
	return c.do(ctx, resp.CmdGet, c.args().AddKey(key))
}

// Set issues SET key value.
func (c *Conn[K, V]) Set(ctx context.Context, key K, value V) (*resp.Command, error) {
	return c.do(ctx, resp.CmdSet, c.args().AddKey(key).AddValue(value))
}

// SetEx issues SET key value EX seconds.
func (c *Conn[K, V]) SetEx(ctx context.Context, key K, value V, ttl time.Duration) (*resp.Command, error) {
	args := c.args().AddKey(key).AddValue(value).
		AddKeyword(resp.KwEx).AddInt(int64(ttl / time.Second))
	return c.do(ctx, resp.CmdSet, args)
}

// Del issues DEL with one or more keys.
func (c *Conn[K, V]) Del(ctx context.Context, keys ...K) (*resp.Command, error) {
	return c.do(ctx, resp.CmdDel, c.args().AddKeys(keys...))
}

// MSet issues MSET with the interleaved pairs of seq. Feed a map through
// maps.All.
func (c *Conn[K, V]) MSet(ctx context.Context, seq iter.Seq2[K, V]) (*resp.Command, error) {
	return c.do(ctx, resp.CmdMSet, c.args().AddMap(seq))
}

// IncrBy issues INCRBY key delta.
func (c *Conn[K, V]) IncrBy(ctx context.Context, key K, delta int64) (*resp.Command, error) {
	return c.do(ctx, resp.CmdIncrBy, c.args().AddKey(key).AddInt(delta))
}

// Expire issues EXPIRE key seconds.
func (c *Conn[K, V]) Expire(ctx context.Context, key K, ttl time.Duration) (*resp.Command, error) {
	return c.do(ctx, resp.CmdExpire, c.args().AddKey(key).AddInt(int64(ttl/time.Second)))
}

// Ping issues PING.
func (c *Conn[K, V]) Ping(ctx context.Context) (*resp.Command, error) {
	cmd := resp.NewCommand(resp.CmdPing, nil)
	return cmd, c.sync.Dispatch(ctx, cmd)
}

func (c *Conn[K, V]) args() *resp.Args[K, V] {
	return resp.NewArgs(c.codec)
}
