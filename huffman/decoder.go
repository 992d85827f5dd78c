package huffman

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// usedCode pairs a canonical code with the symbol it decodes to, drawn
// from the subset of the 256-entry table with a non-zero length.
type usedCode struct {
	c      code
	symbol byte
}

// Decode reads a stream produced by Encode and returns the original
// bytes. It reads the header (264 bytes), then the payload in 4-byte
// chunks (the 32-bit window plus a 4-byte lookahead buffer), and stops
// reading once the declared symbol count has been decoded. By then it
// may have read up to 7 bytes past the last byte those symbols occupy.
func Decode(r io.Reader) ([]byte, error) {
	var nBuf [8]byte
	if _, err := io.ReadFull(r, nBuf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: reading symbol count: %v", ErrTruncatedStream, err)
		}
		return nil, err
	}
	n := binary.BigEndian.Uint64(nBuf[:])

	var lengths [256]uint8
	if _, err := io.ReadFull(r, lengths[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: reading length table: %v", ErrTruncatedStream, err)
		}
		return nil, err
	}

	if err := validateLengths(lengths); err != nil {
		return nil, err
	}
	table := generateCodes(lengths)

	used := make([]usedCode, 0, 256)
	for b := 0; b < 256; b++ {
		if table[b].len > 0 {
			used = append(used, usedCode{c: table[b], symbol: byte(b)})
		}
	}
	// Shorter codes are statistically the most frequent ones (they were
	// assigned to the highest-frequency symbols); checking them first
	// keeps the average number of comparisons per symbol low.
	slices.SortFunc(used, func(a, b usedCode) int {
		return int(a.c.len) - int(b.c.len)
	})

	out := make([]byte, 0, n)
	if n == 0 {
		return out, nil
	}

	win, err := newWindowDecoder(r)
	if err != nil {
		return nil, err
	}

	var count uint64
	for count < n {
		idx, err := matchCode(win.window, used)
		if err != nil {
			return nil, err
		}
		if int(used[idx].c.len) > win.valid {
			return nil, ErrTruncatedStream
		}
		out = append(out, used[idx].symbol)
		count++
		if count == n {
			break
		}
		if err := win.advance(used[idx].c.len); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// matchCode finds the unique entry in used whose code is a prefix of
// window, left-aligned to bit 31. Because canonical codes are
// prefix-free, at most one entry can match.
func matchCode(window uint32, used []usedCode) (int, error) {
	for i, u := range used {
		mask := leftAlignedMask(u.c.len)
		target := u.c.bits << (32 - u.c.len)
		if window&mask == target {
			return i, nil
		}
	}
	return 0, ErrUnmatchedWindow
}

// leftAlignedMask returns a uint32 with its top n bits set, 1 <= n <= 32.
func leftAlignedMask(n uint8) uint32 {
	return ^uint32(0) << (32 - n)
}

// windowDecoder maintains the 32-bit lookahead register and its 4-byte
// refill buffer described in spec §4.8.
type windowDecoder struct {
	r       io.Reader
	window  uint32
	pending [4]byte
	pendLen int // valid bytes currently in pending; < 4 only at real EOF
	pendIdx int // next unconsumed byte in pending
	shift   int // bits consumed past window's MSB alignment since last refill
	valid   int // leading window bits read from the stream; the rest are zero fill past EOF
}

func newWindowDecoder(r io.Reader) (*windowDecoder, error) {
	d := &windowDecoder{r: r}

	var buf [4]byte
	n, err := readUpTo(r, buf[:])
	if err != nil {
		return nil, err
	}
	d.window = binary.BigEndian.Uint32(buf[:])
	d.valid = 8 * n

	if err := d.refillPending(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *windowDecoder) refillPending() error {
	var buf [4]byte
	n, err := readUpTo(d.r, buf[:])
	if err != nil {
		return err
	}
	d.pending = buf
	d.pendLen = n
	d.pendIdx = 0
	return nil
}

// advance shifts the window left by n bits (the length of the code just
// matched) and refills it one byte at a time from the pending buffer
// until fewer than 8 bits of slack remain, matching spec §4.8.2.d. Once
// the input is exhausted the window is filled with zero bits instead.
func (d *windowDecoder) advance(n uint8) error {
	d.window <<= n
	d.shift += int(n)
	d.valid -= int(n)

	for d.shift >= 8 {
		if d.pendIdx == len(d.pending) {
			if err := d.refillPending(); err != nil {
				return err
			}
		}
		if d.pendIdx < d.pendLen {
			next := uint32(d.pending[d.pendIdx]) << uint(d.shift-8)
			d.window |= next
			d.pendIdx++
			d.valid += 8
		}
		d.shift -= 8
	}
	return nil
}

// readUpTo reads into buf, returning how many bytes were actually read.
// Running out of input before filling buf is not itself an error here:
// Decode reports ErrTruncatedStream only when a matched code reaches
// past the window bits that were actually read (windowDecoder.valid).
func readUpTo(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, nil
	}
	return n, err
}
