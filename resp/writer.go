package resp

import (
	"bytes"
	"strconv"
)

// CRLF terminates every line of the RESP protocol.
const CRLF = "\r\n"

var crlf = []byte(CRLF)

// WriteBulk frames b as a RESP bulk string: $<len>\r\n<payload>\r\n.
// A nil slice frames as a zero-length bulk string ($0\r\n\r\n), not as a
// protocol nil.
func WriteBulk(buf *bytes.Buffer, b []byte) {
	buf.WriteByte('$')
	writeASCIIInt(buf, int64(len(b)))
	buf.Write(crlf)
	buf.Write(b)
	buf.Write(crlf)
}

// WriteBulkString frames s as a RESP bulk string. The length is the byte
// length of s; the protocol treats strings as single-byte-per-character
// text, so callers are expected to pass ASCII.
func WriteBulkString(buf *bytes.Buffer, s string) {
	buf.WriteByte('$')
	writeASCIIInt(buf, int64(len(s)))
	buf.Write(crlf)
	buf.WriteString(s)
	buf.Write(crlf)
}

// WriteBulkRunes frames rs as a RESP bulk string, narrowing each rune to a
// single byte. Runes outside the single-byte range are truncated.
func WriteBulkRunes(buf *bytes.Buffer, rs []rune) {
	buf.WriteByte('$')
	writeASCIIInt(buf, int64(len(rs)))
	buf.Write(crlf)
	for _, r := range rs {
		buf.WriteByte(byte(r))
	}
	buf.Write(crlf)
}

// WriteBulkBuffer frames the occupied region of src as a RESP bulk string.
// The length is src.Len(), the byte count actually written to src, not its
// capacity.
func WriteBulkBuffer(buf *bytes.Buffer, src *bytes.Buffer) {
	WriteBulk(buf, src.Bytes())
}

// WriteArrayHeader writes a RESP array header: *<n>\r\n.
func WriteArrayHeader(buf *bytes.Buffer, n int) {
	buf.WriteByte('*')
	writeASCIIInt(buf, int64(n))
	buf.Write(crlf)
}

// writeASCIIInt emits v in decimal ASCII without leading zeros.
// Non-negative values below ten are a single byte write.
func writeASCIIInt(buf *bytes.Buffer, v int64) {
	if v >= 0 && v < 10 {
		buf.WriteByte(byte('0' + v))
		return
	}
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), v, 10))
}
