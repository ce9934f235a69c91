package resp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// sliceCodec is a generic-path codec for []byte keys and values. It encodes
// the same bytes as RawBytes but through the finished-slice path.
type sliceCodec struct{}

func (sliceCodec) EncodeKey(key []byte) ([]byte, error)     { return key, nil }
func (sliceCodec) EncodeValue(value []byte) ([]byte, error) { return value, nil }

// failingCodec always fails, to exercise error propagation out of Encode.
type failingCodec struct{}

var errBrokenCodec = errors.New("broken codec")

func (failingCodec) EncodeKey(key string) ([]byte, error)     { return nil, errBrokenCodec }
func (failingCodec) EncodeValue(value string) ([]byte, error) { return nil, errBrokenCodec }

// failingBufferCodec fails on the buffered path after the scratch buffer
// has been acquired.
type failingBufferCodec struct {
	StringCodec
}

func (failingBufferCodec) EncodeKeyTo(key string, dst *bytes.Buffer) error {
	return errBrokenCodec
}

func (failingBufferCodec) EncodeValueTo(value string, dst *bytes.Buffer) error {
	return errBrokenCodec
}

func TestResolveStrategy(t *testing.T) {
	require.Equal(t, strategyRaw, resolveStrategy(RawBytes))
	require.Equal(t, strategyBuffered, resolveStrategy[string, string](StringCodec{}))
	require.Equal(t, strategyGeneric, resolveStrategy[[]byte, []byte](sliceCodec{}))
}

func TestRawBytesFastPath(t *testing.T) {
	args := NewArgs(RawBytes).AddKey([]byte("key")).AddValue([]byte("value"))

	require.Equal(t, "$3\r\nkey\r\n$5\r\nvalue\r\n", encodeArgs(t, args))
}

func TestRawBytesNilEncodesEmptyBulk(t *testing.T) {
	// A nil slice through the passthrough codec is a zero-length bulk
	// string, not an error and not a protocol nil.
	args := NewArgs(RawBytes).AddKey(nil).AddValue(nil)

	require.Equal(t, "$0\r\n\r\n$0\r\n\r\n", encodeArgs(t, args))
}

func TestFastPathMatchesGenericPath(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("k"),
		[]byte("some longer payload with spaces"),
		{0x00, 0x0d, 0x0a, 0xff},
	}

	for _, p := range payloads {
		fast := NewArgs(RawBytes).AddKey(p).AddValue(p)
		generic := NewArgs[[]byte, []byte](sliceCodec{}).AddKey(p).AddValue(p)

		require.Equal(t, encodeArgs(t, generic), encodeArgs(t, fast),
			"payload %q must encode identically on both paths", p)
	}
}

func TestBufferedPathMatchesGenericPath(t *testing.T) {
	buffered := NewArgs(StringCodec{}).AddKey("k").AddValue("longer value")

	require.Equal(t, "$1\r\nk\r\n$12\r\nlonger value\r\n", encodeArgs(t, buffered))
}

func TestGenericPathCodecErrorPropagates(t *testing.T) {
	var buf bytes.Buffer

	err := NewArgs(failingCodec{}).AddKey("k").Encode(&buf)
	require.ErrorIs(t, err, errBrokenCodec)

	err = NewArgs(failingCodec{}).AddValue("v").Encode(&buf)
	require.ErrorIs(t, err, errBrokenCodec)
}

func TestBufferedPathCodecErrorPropagates(t *testing.T) {
	var buf bytes.Buffer

	err := NewArgs[string, string](failingBufferCodec{}).AddKey("k").Encode(&buf)
	require.ErrorIs(t, err, errBrokenCodec)

	err = NewArgs[string, string](failingBufferCodec{}).AddValue("v").Encode(&buf)
	require.ErrorIs(t, err, errBrokenCodec)
}

func TestCodecFailureStopsEncoding(t *testing.T) {
	// The failing argument leaves earlier output intact and later
	// arguments unwritten.
	args := NewArgs(failingCodec{}).Add("ok").AddKey("k").Add("never")

	var buf bytes.Buffer
	err := args.Encode(&buf)
	require.ErrorIs(t, err, errBrokenCodec)
	require.Equal(t, "$2\r\nok\r\n", buf.String())
}

func TestStringCodecRoundTrip(t *testing.T) {
	b, err := StringCodec{}.EncodeKey("key")
	require.NoError(t, err)
	require.Equal(t, []byte("key"), b)

	var dst bytes.Buffer
	require.NoError(t, StringCodec{}.EncodeValueTo("value", &dst))
	require.Equal(t, "value", dst.String())
	require.Equal(t, 5, StringCodec{}.EstimateValueSize("value"))
}
