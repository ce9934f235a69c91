package rediswire

import (
	"context"
	"net"
	"time"

	"github.com/jackc/puddle/v2"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sony/gobreaker/v2"

	"github.com/rediswire/rediswire/resp"
)

// Config holds configuration for the pooled client.
type Config struct {
	// MaxSize is the maximum number of connections per server pool.
	// Required: must be > 0.
	MaxSize int32

	// CommandTimeout bounds each blocking dispatch. Zero means no timeout
	// beyond the caller's context.
	CommandTimeout time.Duration

	// Dialer is the net.Dialer used to create new connections.
	// If nil, the default net.Dialer is used.
	Dialer *net.Dialer

	// SelectServer picks which server to use for a routing key.
	// If nil, DefaultSelectServer (xxh3 + jump hash) is used.
	SelectServer SelectServerFunc

	// NewCircuitBreaker creates a circuit breaker for a server. Called once
	// per server address when its pool is created. If nil, no circuit
	// breaker is used.
	NewCircuitBreaker func(serverAddr string) *gobreaker.CircuitBreaker[*resp.Command]

	// for testing purposes only
	constructor func(ctx context.Context, addr string) (*ChannelHandler, error)
}

// serverPool couples one server address with its connection pool and
// optional circuit breaker.
type serverPool struct {
	addr    string
	pool    *puddle.Pool[*ChannelHandler]
	breaker *gobreaker.CircuitBreaker[*resp.Command] // nil if not configured
}

// Client routes commands to a set of servers, pooling one group of
// pipelined connections per server. It is safe for concurrent use.
type Client struct {
	addrs        []string
	selectServer SelectServerFunc
	pools        *xsync.MapOf[string, *serverPool]
	config       Config
}

// NewClient creates a client over the given server addresses. Pools are
// created lazily per server on first use.
func NewClient(config Config, addrs ...string) (*Client, error) {
	if len(addrs) == 0 {
		return nil, ErrNoServers
	}
	if config.MaxSize < 1 {
		return nil, ErrInvalidPoolSize
	}

	selectServer := config.SelectServer
	if selectServer == nil {
		selectServer = DefaultSelectServer
	}
	if config.Dialer == nil {
		config.Dialer = &net.Dialer{}
	}

	return &Client{
		addrs:        addrs,
		selectServer: selectServer,
		pools:        xsync.NewMapOf[string, *serverPool](),
		config:       config,
	}, nil
}

// Do routes cmd to the server owning key, dispatches it and blocks until
// completion. The same command handle is returned for inspection.
func (c *Client) Do(ctx context.Context, key string, cmd *resp.Command) (*resp.Command, error) {
	sp, err := c.poolForKey(key)
	if err != nil {
		return cmd, err
	}

	if sp.breaker != nil {
		return sp.breaker.Execute(func() (*resp.Command, error) {
			return c.dispatch(ctx, sp, cmd)
		})
	}
	return c.dispatch(ctx, sp, cmd)
}

func (c *Client) dispatch(ctx context.Context, sp *serverPool, cmd *resp.Command) (*resp.Command, error) {
	res, err := sp.pool.Acquire(ctx)
	if err != nil {
		return cmd, err
	}

	handler := res.Value()
	err = NewSyncDispatcher(handler).Dispatch(ctx, cmd)
	if err != nil || handler.IsClosed() {
		// Tear down synchronously so the broken connection is gone
		// before the caller retries.
		res.Hijack()
		_ = handler.Close()
	} else {
		res.Release()
	}
	return cmd, err
}

// poolForKey returns the pool for the server that owns key, creating it on
// first use.
func (c *Client) poolForKey(key string) (*serverPool, error) {
	addr := c.addrs[c.selectServer(key, len(c.addrs))]

	sp, _ := c.pools.LoadOrCompute(addr, func() *serverPool {
		return c.newServerPool(addr)
	})
	if sp == nil || sp.pool == nil {
		return nil, ErrNoServers
	}
	return sp, nil
}

func (c *Client) newServerPool(addr string) *serverPool {
	constructor := c.config.constructor
	if constructor == nil {
		constructor = func(ctx context.Context, addr string) (*ChannelHandler, error) {
			conn, err := c.config.Dialer.DialContext(ctx, "tcp", addr)
			if err != nil {
				return nil, &ConnectionError{Op: "dial", Err: err}
			}
			return NewChannelHandler(NewPipelineWriter(conn), c.config.CommandTimeout), nil
		}
	}

	pool, err := puddle.NewPool(&puddle.Config[*ChannelHandler]{
		Constructor: func(ctx context.Context) (*ChannelHandler, error) {
			return constructor(ctx, addr)
		},
		Destructor: func(h *ChannelHandler) {
			_ = h.Close()
		},
		MaxSize: c.config.MaxSize,
	})
	if err != nil {
		logger().Warn("creating server pool", "addr", addr, "error", err)
		return &serverPool{addr: addr}
	}

	sp := &serverPool{addr: addr, pool: pool}
	if c.config.NewCircuitBreaker != nil {
		sp.breaker = c.config.NewCircuitBreaker(addr)
	}
	return sp
}

// Close destroys every pooled connection. In-flight acquires fail.
func (c *Client) Close() {
	c.pools.Range(func(addr string, sp *serverPool) bool {
		if sp.pool != nil {
			sp.pool.Close()
		}
		c.pools.Delete(addr)
		return true
	})
}

// NewCircuitBreakerConfig returns a breaker factory for Config. The breaker
// opens once at least three requests in the rolling interval have failed at
// a 60% ratio or higher.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[*resp.Command] {
	return func(serverAddr string) *gobreaker.CircuitBreaker[*resp.Command] {
		settings := gobreaker.Settings{
			Name:        serverAddr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[*resp.Command](settings)
	}
}
