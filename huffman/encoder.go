package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// headerSize is the fixed 8-byte symbol count plus the 256-byte length
// vector that precede every payload.
const headerSize = 8 + 256

// Encode drains r, builds a canonical Huffman code over its bytes, and
// returns a self-describing compressed stream:
//
//	offset 0   : 8-byte big-endian symbol count N
//	offset 8   : 256-byte length vector L
//	offset 264 : MSB-first bit-packed payload, zero-padded in its final byte
//
// An empty input produces exactly headerSize zero bytes and no payload.
func Encode(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	freq := tabulateFrequencies(data)
	arena := buildTree(freq)
	assignDepths(arena)
	lengths := extractLengths(arena)

	if err := validateLengths(lengths); err != nil {
		return nil, err
	}
	table := generateCodes(lengths)

	out := make([]byte, 0, headerSize+len(data)/2)
	var nBuf [8]byte
	binary.BigEndian.PutUint64(nBuf[:], uint64(len(data)))
	out = append(out, nBuf[:]...)
	out = append(out, lengths[:]...)

	buf := bytes.NewBuffer(out)
	bw := newBitWriter(buf)
	for _, b := range data {
		c := table[b]
		if c.len == 0 {
			// unreachable: every byte present in data has a non-zero length
			// by construction of buildTree/extractLengths.
			return nil, fmt.Errorf("huffman: internal error: byte %d has no code", b)
		}
		if err := bw.writeBits(c.bits, c.len); err != nil {
			return nil, err
		}
	}
	if err := bw.flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
