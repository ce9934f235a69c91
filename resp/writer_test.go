package resp

import (
	"bytes"
	"testing"
)

func TestWriteBulk(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		expected string
	}{
		{
			name:     "simple payload",
			payload:  []byte("hello"),
			expected: "$5\r\nhello\r\n",
		},
		{
			name:     "empty payload",
			payload:  []byte{},
			expected: "$0\r\n\r\n",
		},
		{
			name:     "nil payload",
			payload:  nil,
			expected: "$0\r\n\r\n",
		},
		{
			name:     "binary payload",
			payload:  []byte{0x00, 0xff, 0x0d, 0x0a},
			expected: "$4\r\n\x00\xff\r\n\r\n",
		},
		{
			name:     "multi digit length",
			payload:  bytes.Repeat([]byte("x"), 123),
			expected: "$123\r\n" + string(bytes.Repeat([]byte("x"), 123)) + "\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteBulk(&buf, tt.payload)
			if buf.String() != tt.expected {
				t.Errorf("WriteBulk() = %q, want %q", buf.String(), tt.expected)
			}
		})
	}
}

func TestWriteBulkString(t *testing.T) {
	var buf bytes.Buffer
	WriteBulkString(&buf, "key")
	if buf.String() != "$3\r\nkey\r\n" {
		t.Errorf("WriteBulkString() = %q, want %q", buf.String(), "$3\r\nkey\r\n")
	}
}

func TestWriteBulkRunesNarrowing(t *testing.T) {
	// Each rune is truncated to its low byte, and the length is the rune
	// count, not the UTF-8 byte count.
	var buf bytes.Buffer
	WriteBulkRunes(&buf, []rune{'a', 'b', 0x0141})
	expected := "$3\r\nab\x41\r\n"
	if buf.String() != expected {
		t.Errorf("WriteBulkRunes() = %q, want %q", buf.String(), expected)
	}
}

func TestWriteArrayHeader(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "*0\r\n"},
		{3, "*3\r\n"},
		{42, "*42\r\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		WriteArrayHeader(&buf, tt.n)
		if buf.String() != tt.expected {
			t.Errorf("WriteArrayHeader(%d) = %q, want %q", tt.n, buf.String(), tt.expected)
		}
	}
}

func TestWriteASCIIIntSingleDigit(t *testing.T) {
	for v := int64(0); v < 10; v++ {
		var buf bytes.Buffer
		writeASCIIInt(&buf, v)
		if buf.Len() != 1 || buf.Bytes()[0] != byte('0'+v) {
			t.Errorf("writeASCIIInt(%d) = %q", v, buf.String())
		}
	}
}

func TestWriteASCIIIntMultiDigit(t *testing.T) {
	tests := []struct {
		v        int64
		expected string
	}{
		{10, "10"},
		{128, "128"},
		{1048576, "1048576"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		writeASCIIInt(&buf, tt.v)
		if buf.String() != tt.expected {
			t.Errorf("writeASCIIInt(%d) = %q, want %q", tt.v, buf.String(), tt.expected)
		}
	}
}
