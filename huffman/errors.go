// Package huffman implements a byte-oriented canonical Huffman
// compressor/decompressor: a self-describing stream of an 8-byte
// symbol count, a 256-entry code-length table, and an MSB-first
// bit-packed payload.
package huffman

import "errors"

// ErrTruncatedStream is returned when a compressed stream ends before
// its 264-byte header or its declared payload has been fully read.
var ErrTruncatedStream = errors.New("huffman: truncated stream")

// ErrUnmatchedWindow is returned when no canonical code matches the
// current bits of the decode window. This indicates a corrupted stream
// or a bug in the encoder that produced it.
var ErrUnmatchedWindow = errors.New("huffman: no code matches window")

// ErrInvalidLengths is returned when a code-length table violates the
// Kraft inequality (an over-full table that cannot describe any
// prefix-free code) or holds a length above the 32-bit maximum. Both
// Encode and Decode check their table; under-full tables are accepted.
var ErrInvalidLengths = errors.New("huffman: code lengths violate Kraft inequality")
