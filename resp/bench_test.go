package resp

import (
	"bytes"
	"testing"
)

// Benchmark encoding a small GET request
func BenchmarkEncode_Get(b *testing.B) {
	cmd := NewCommand(CmdGet, NewArgs(StringCodec{}).AddKey("mykey"))
	var buf bytes.Buffer
	b.ResetTimer()

	for b.Loop() {
		buf.Reset()
		if err := cmd.Encode(&buf); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark encoding a SET with a 10KB value through the raw fast path
func BenchmarkEncode_SetRawLarge(b *testing.B) {
	value := bytes.Repeat([]byte("x"), 10*1024)
	cmd := NewCommand(CmdSet, NewArgs(RawBytes).AddKey([]byte("mykey")).AddValue(value))
	var buf bytes.Buffer
	b.ResetTimer()

	for b.Loop() {
		buf.Reset()
		if err := cmd.Encode(&buf); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark the cached small-integer argument path
func BenchmarkArgs_SmallIntegers(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()

	for b.Loop() {
		buf.Reset()
		args := NewArgs(StringCodec{}).AddKey("counter").AddInt(1).AddInt(64)
		if err := args.Encode(&buf); err != nil {
			b.Fatal(err)
		}
	}
}
