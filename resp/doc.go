// Package resp implements the request side of the RESP wire protocol.
//
// Every singular argument is framed as a length-prefixed bulk string:
//
//	$<len>\r\n<payload>\r\n
//
// and a full request is an array of bulk strings led by the command type.
// Numbers travel as their decimal ASCII text, not a binary encoding.
//
// # Building requests
//
// Args is the fluent argument builder. Key and Value arguments go through
// the Codec the list was created with; everything else carries its own
// bytes:
//
//	args := resp.NewArgs(resp.StringCodec{}).AddKey("k").AddValue("v")
//	cmd := resp.NewCommand(resp.CmdSet, args)
//
//	var buf bytes.Buffer
//	err := cmd.Encode(&buf) // *3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n
//
// # Codecs
//
// A Codec turns typed keys and values into bytes. Codecs that implement
// BufferCodec write into a pooled scratch buffer instead of returning a
// slice. RawBytes is the passthrough codec for []byte keys and values; it
// skips the codec round-trip entirely. The encode path is picked once per
// argument list, when NewArgs resolves the codec's strategy.
//
// # Completion
//
// Command doubles as the caller's handle: the transport completes it and
// callers block on Wait with a context. Response decoding is a separate
// concern layered on top of this package.
package resp
