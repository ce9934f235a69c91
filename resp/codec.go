package resp

import (
	"bytes"
	"sync"
)

// Codec converts typed keys and values to their wire byte representation.
// Implementations must be safe for concurrent use: one codec instance is
// shared by every argument list created from it.
type Codec[K, V any] interface {
	// EncodeKey returns the byte representation of key.
	EncodeKey(key K) ([]byte, error)

	// EncodeValue returns the byte representation of value.
	EncodeValue(value V) ([]byte, error)
}

// BufferCodec is an optional Codec capability. Codecs that can write their
// encoding incrementally implement it to avoid producing an intermediate
// byte slice: the encoder writes into a pooled scratch buffer which is then
// framed directly.
type BufferCodec[K, V any] interface {
	Codec[K, V]

	// EncodeKeyTo writes the byte representation of key into dst.
	EncodeKeyTo(key K, dst *bytes.Buffer) error

	// EncodeValueTo writes the byte representation of value into dst.
	EncodeValueTo(value V, dst *bytes.Buffer) error

	// EstimateKeySize returns the expected encoded size of key in bytes.
	// It sizes the scratch buffer; the framed length is always the byte
	// count actually written, not the estimate.
	EstimateKeySize(key K) int

	// EstimateValueSize returns the expected encoded size of value in bytes.
	EstimateValueSize(value V) int
}

// encodingStrategy selects the encode path for Key and Value arguments.
// It is resolved once when the argument list is created, not per argument.
type encodingStrategy uint8

const (
	// strategyGeneric asks the codec for a finished byte slice and frames it.
	strategyGeneric encodingStrategy = iota

	// strategyBuffered has the codec write into a pooled scratch buffer.
	strategyBuffered

	// strategyRaw frames the []byte payload directly, no codec round-trip.
	strategyRaw
)

func resolveStrategy[K, V any](codec Codec[K, V]) encodingStrategy {
	if _, ok := any(codec).(byteSliceCodec); ok {
		return strategyRaw
	}
	if _, ok := codec.(BufferCodec[K, V]); ok {
		return strategyBuffered
	}
	return strategyGeneric
}

// byteSliceCodec passes keys and values through unchanged. It is the
// distinguished passthrough codec: argument lists created with RawBytes
// encode Key and Value arguments straight from the []byte payload.
type byteSliceCodec struct{}

// RawBytes treats keys and values as raw byte slices and frames them with
// no intermediate allocation. A nil slice encodes as a zero-length bulk
// string; it is not a way to express an absent argument.
var RawBytes Codec[[]byte, []byte] = byteSliceCodec{}

func (byteSliceCodec) EncodeKey(key []byte) ([]byte, error)     { return key, nil }
func (byteSliceCodec) EncodeValue(value []byte) ([]byte, error) { return value, nil }

// StringCodec encodes keys and values as their raw string bytes. It
// implements BufferCodec, so string arguments take the scratch-buffer path.
type StringCodec struct{}

func (StringCodec) EncodeKey(key string) ([]byte, error)     { return []byte(key), nil }
func (StringCodec) EncodeValue(value string) ([]byte, error) { return []byte(value), nil }

func (StringCodec) EncodeKeyTo(key string, dst *bytes.Buffer) error {
	dst.WriteString(key)
	return nil
}

func (StringCodec) EncodeValueTo(value string, dst *bytes.Buffer) error {
	dst.WriteString(value)
	return nil
}

func (StringCodec) EstimateKeySize(key string) int     { return len(key) }
func (StringCodec) EstimateValueSize(value string) int { return len(value) }

// Scratch buffers for the buffered encode path. Typical encoded keys and
// values are small; oversized estimates just grow the pooled buffer.
var scratchPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

func getScratch(sizeHint int) *bytes.Buffer {
	buf := scratchPool.Get().(*bytes.Buffer)
	if sizeHint > buf.Cap() {
		buf.Grow(sizeHint - buf.Len())
	}
	return buf
}

func putScratch(buf *bytes.Buffer) {
	buf.Reset()
	scratchPool.Put(buf)
}
