package resp

import (
	"bytes"
	"iter"
	"os"
	"strconv"
)

// argument is one self-contained, independently encodable command argument.
// The concrete variants form a closed set; each holds only the data it
// needs to write itself.
type argument interface {
	encode(buf *bytes.Buffer) error
}

// Args is an ordered container of command arguments. Key and Value
// arguments are encoded with the Codec the list was created with; all other
// arguments carry their own bytes. Append methods return the receiver for
// fluent chaining:
//
//	args := resp.NewArgs(resp.StringCodec{}).AddKey("k").AddValue("v")
//
// An Args can be reused across commands. It is not safe for concurrent
// mutation; once fully built, concurrent Encode calls are safe.
type Args[K, V any] struct {
	codec    Codec[K, V]
	strategy encodingStrategy
	args     []argument
}

// NewArgs creates an empty argument list bound to codec.
// It panics if codec is nil.
func NewArgs[K, V any](codec Codec[K, V]) *Args[K, V] {
	if codec == nil {
		panic("rediswire: codec must not be nil")
	}
	return &Args[K, V]{
		codec:    codec,
		strategy: resolveStrategy(codec),
	}
}

// Count returns the number of singular arguments held.
func (a *Args[K, V]) Count() int {
	return len(a.args)
}

// AddKey appends a key argument.
func (a *Args[K, V]) AddKey(key K) *Args[K, V] {
	a.args = append(a.args, keyArg[K, V]{key: key, codec: a.codec, strategy: a.strategy})
	return a
}

// AddKeys appends one key argument per element.
func (a *Args[K, V]) AddKeys(keys ...K) *Args[K, V] {
	for _, key := range keys {
		a.AddKey(key)
	}
	return a
}

// AddKeySeq appends one key argument per element of seq.
// It panics if seq is nil.
func (a *Args[K, V]) AddKeySeq(seq iter.Seq[K]) *Args[K, V] {
	if seq == nil {
		panic("rediswire: key sequence must not be nil")
	}
	for key := range seq {
		a.AddKey(key)
	}
	return a
}

// AddValue appends a value argument.
func (a *Args[K, V]) AddValue(value V) *Args[K, V] {
	a.args = append(a.args, valueArg[K, V]{val: value, codec: a.codec, strategy: a.strategy})
	return a
}

// AddValues appends one value argument per element.
func (a *Args[K, V]) AddValues(values ...V) *Args[K, V] {
	for _, value := range values {
		a.AddValue(value)
	}
	return a
}

// AddValueSeq appends one value argument per element of seq.
// It panics if seq is nil.
func (a *Args[K, V]) AddValueSeq(seq iter.Seq[V]) *Args[K, V] {
	if seq == nil {
		panic("rediswire: value sequence must not be nil")
	}
	for value := range seq {
		a.AddValue(value)
	}
	return a
}

// AddMap appends each pair of seq as an interleaved key/value argument
// pair: the key always directly precedes its value. Feed a map through
// maps.All; pair order follows the sequence, so map-fed pairs arrive in Go
// map iteration order.
// It panics if seq is nil.
func (a *Args[K, V]) AddMap(seq iter.Seq2[K, V]) *Args[K, V] {
	if seq == nil {
		panic("rediswire: pair sequence must not be nil")
	}
	for key, value := range seq {
		a.AddKey(key).AddValue(value)
	}
	return a
}

// Add appends a string argument, framed as a bulk string of its raw bytes.
func (a *Args[K, V]) Add(s string) *Args[K, V] {
	a.args = append(a.args, stringArg{val: s})
	return a
}

// AddRunes appends a character-sequence argument. Each rune is narrowed to
// a single byte at encode time.
func (a *Args[K, V]) AddRunes(rs []rune) *Args[K, V] {
	a.args = append(a.args, runesArg{val: rs})
	return a
}

// AddInt appends a 64-bit integer argument, sent as its decimal text form
// framed as a bulk string.
func (a *Args[K, V]) AddInt(n int64) *Args[K, V] {
	a.args = append(a.args, newIntegerArgument(n))
	return a
}

// AddFloat appends a double argument, sent as its shortest round-trip
// decimal text form framed as a bulk string.
func (a *Args[K, V]) AddFloat(n float64) *Args[K, V] {
	a.args = append(a.args, floatArg{val: n})
	return a
}

// AddBytes appends a raw byte-slice argument.
func (a *Args[K, V]) AddBytes(b []byte) *Args[K, V] {
	a.args = append(a.args, bytesArg{val: b})
	return a
}

// AddKeyword appends a protocol keyword in its predefined byte form.
// It panics if kw is nil.
func (a *Args[K, V]) AddKeyword(kw Keyword) *Args[K, V] {
	if kw == nil {
		panic("rediswire: keyword must not be nil")
	}
	return a.AddBytes(kw.Bytes())
}

// Encode writes every argument's wire form to buf in insertion order.
// Bulk strings are self-delimiting, so no separators are added. Encode does
// not mutate the list; a codec failure leaves buf partially written and is
// returned to the caller.
func (a *Args[K, V]) Encode(buf *bytes.Buffer) error {
	for _, arg := range a.args {
		if err := arg.encode(buf); err != nil {
			return err
		}
	}
	return nil
}

// String renders the encoded wire form for debugging.
func (a *Args[K, V]) String() string {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return "Args[error=" + err.Error() + "]"
	}
	return "Args[" + buf.String() + "]"
}

type bytesArg struct {
	val []byte
}

func (g bytesArg) encode(buf *bytes.Buffer) error {
	WriteBulk(buf, g.val)
	return nil
}

type stringArg struct {
	val string
}

func (g stringArg) encode(buf *bytes.Buffer) error {
	WriteBulkString(buf, g.val)
	return nil
}

type runesArg struct {
	val []rune
}

func (g runesArg) encode(buf *bytes.Buffer) error {
	WriteBulkRunes(buf, g.val)
	return nil
}

type intArg struct {
	val int64
}

func (g *intArg) encode(buf *bytes.Buffer) error {
	WriteBulkString(buf, strconv.FormatInt(g.val, 10))
	return nil
}

type floatArg struct {
	val float64
}

func (g floatArg) encode(buf *bytes.Buffer) error {
	WriteBulkString(buf, strconv.FormatFloat(g.val, 'g', -1, 64))
	return nil
}

// defaultIntegerCacheSize is the number of small non-negative integer
// arguments precomputed at startup. Override with the
// REDISWIRE_INTEGER_CACHE environment variable.
const defaultIntegerCacheSize = 128

var integerCache = buildIntegerCache(integerCacheSizeFromEnv())

func integerCacheSizeFromEnv() int {
	if s := os.Getenv("REDISWIRE_INTEGER_CACHE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return defaultIntegerCacheSize
}

func buildIntegerCache(size int) []*intArg {
	cache := make([]*intArg, size)
	for i := range cache {
		cache[i] = &intArg{val: int64(i)}
	}
	return cache
}

// newIntegerArgument returns the shared cached argument for small
// non-negative values and allocates otherwise. Cached and fresh instances
// encode identically.
func newIntegerArgument(v int64) *intArg {
	if v >= 0 && v < int64(len(integerCache)) {
		return integerCache[v]
	}
	return &intArg{val: v}
}

type keyArg[K, V any] struct {
	key      K
	codec    Codec[K, V]
	strategy encodingStrategy
}

func (g keyArg[K, V]) encode(buf *bytes.Buffer) error {
	switch g.strategy {
	case strategyRaw:
		WriteBulk(buf, any(g.key).([]byte))
		return nil

	case strategyBuffered:
		bc := g.codec.(BufferCodec[K, V])
		scratch := getScratch(bc.EstimateKeySize(g.key))
		defer putScratch(scratch)
		if err := bc.EncodeKeyTo(g.key, scratch); err != nil {
			return err
		}
		WriteBulkBuffer(buf, scratch)
		return nil

	default:
		b, err := g.codec.EncodeKey(g.key)
		if err != nil {
			return err
		}
		WriteBulk(buf, b)
		return nil
	}
}

type valueArg[K, V any] struct {
	val      V
	codec    Codec[K, V]
	strategy encodingStrategy
}

func (g valueArg[K, V]) encode(buf *bytes.Buffer) error {
	switch g.strategy {
	case strategyRaw:
		WriteBulk(buf, any(g.val).([]byte))
		return nil

	case strategyBuffered:
		bc := g.codec.(BufferCodec[K, V])
		scratch := getScratch(bc.EstimateValueSize(g.val))
		defer putScratch(scratch)
		if err := bc.EncodeValueTo(g.val, scratch); err != nil {
			return err
		}
		WriteBulkBuffer(buf, scratch)
		return nil

	default:
		b, err := g.codec.EncodeValue(g.val)
		if err != nil {
			return err
		}
		WriteBulk(buf, b)
		return nil
	}
}
