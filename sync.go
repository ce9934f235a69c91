package rediswire

import (
	"context"
	"time"

	"github.com/rediswire/rediswire/resp"
)

// AsyncDispatcher issues commands without waiting for completion.
// ChannelHandler implements it.
type AsyncDispatcher interface {
	Dispatch(cmd *resp.Command) *resp.Command
	Timeout() time.Duration
}

// SyncDispatcher adapts an AsyncDispatcher into a blocking call surface:
// every dispatch waits for command completion, bounded by the dispatcher's
// configured timeout when one is set.
type SyncDispatcher struct {
	async AsyncDispatcher
}

// NewSyncDispatcher wraps async. It panics if async is nil.
func NewSyncDispatcher(async AsyncDispatcher) *SyncDispatcher {
	if async == nil {
		panic("rediswire: async dispatcher must not be nil")
	}
	return &SyncDispatcher{async: async}
}

// Dispatch forwards cmd and blocks until it completes, ctx is done, or the
// configured command timeout elapses.
func (s *SyncDispatcher) Dispatch(ctx context.Context, cmd *resp.Command) error {
	cmd = s.async.Dispatch(cmd)

	if d := s.async.Timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return cmd.Wait(ctx)
}
