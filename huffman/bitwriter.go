package huffman

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/icza/bitio"
)

// bitWriter packs variable-width codes MSB-first into an underlying byte
// sink. It wraps *bitio.Writer, whose WriteBits already implements the
// MSB-first, cross-byte-boundary packing this format needs; this type
// adds the domain-specific pieces: masking to the requested bit width
// (including the n==32 case, where a naive "(1<<n)-1" mask would shift
// by 32 and be undefined) and the "flush on drop" resource discipline.
//
// A bitWriter is exclusively owned by one encode call and must not be
// used after flush.
type bitWriter struct {
	w      *bitio.Writer
	closed bool
}

func newBitWriter(w io.Writer) *bitWriter {
	bw := &bitWriter{w: bitio.NewWriter(w)}
	// Safety net mirroring *os.File's finalizer: if a caller forgets to
	// Close, the partial byte is still flushed (best effort) instead of
	// silently dropping up to 7 bits of payload. This cannot surface an
	// error to any caller, since it runs on the garbage collector's time,
	// so failures are only ever reported as a diagnostic.
	runtime.SetFinalizer(bw, (*bitWriter).finalize)
	return bw
}

// writeBits writes the low n bits of value, 1 <= n <= 32, MSB-first.
func (bw *bitWriter) writeBits(value uint32, n uint8) error {
	if n == 0 || n > 32 {
		return fmt.Errorf("huffman: writeBits: n=%d out of range [1,32]", n)
	}
	var masked uint32
	if n == 32 {
		masked = value
	} else {
		masked = value & (1<<n - 1)
	}
	return bw.w.WriteBits(uint64(masked), n)
}

// flush emits any partial byte, right-padded with zero bits, and
// releases the underlying sink. After flush, the bitWriter must not be
// used again.
func (bw *bitWriter) flush() error {
	if bw.closed {
		return nil
	}
	bw.closed = true
	runtime.SetFinalizer(bw, nil)
	return bw.w.Close()
}

func (bw *bitWriter) finalize() {
	if bw.closed {
		return
	}
	if err := bw.w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "huffman: bit writer flushed implicitly (missing Close/flush call): %v\n", err)
	}
}
