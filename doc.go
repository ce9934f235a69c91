// Package rediswire manages the lifecycle of pipelined RESP connections.
//
// A ChannelHandler tracks one logical connection: it forwards commands to
// its Writer, keeps independent active/closed flags visible across
// goroutines, and fires close listeners exactly once per close. The
// provided PipelineWriter serializes commands onto a net.Conn with
// auto-flush or batched flushing. Conn layers a typed, blocking command
// surface over a handler, and Client pools handlers per server with
// optional circuit breaking.
//
// Request encoding lives in the resp subpackage.
package rediswire
