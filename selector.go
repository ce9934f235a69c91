package rediswire

import (
	"github.com/rediswire/rediswire/internal"
	"github.com/zeebo/xxh3"
)

// SelectServerFunc picks which server handles a given routing key. It
// receives the key and the current server count and returns an index into
// the server list.
type SelectServerFunc func(key string, serverCount int) int

// DefaultSelectServer hashes the key with xxh3 and maps it onto a server
// with Jump consistent hashing, which keeps key movement minimal when
// servers are added or removed.
func DefaultSelectServer(key string, serverCount int) int {
	return internal.JumpHash(xxh3.HashString(key), serverCount)
}

// staticSelector is used in tests to pin a specific server.
func staticSelector(index int) SelectServerFunc {
	return func(key string, serverCount int) int {
		return index % serverCount
	}
}
