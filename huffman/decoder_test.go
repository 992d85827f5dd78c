package huffman

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestDecodeDoesNotDrainTrailingData(t *testing.T) {
	data := []byte("AAAABBC")
	encoded, err := Encode(bytes.NewReader(data))
	require.NoError(t, err)

	trailer := bytes.Repeat([]byte{0xFF}, 4096)
	padded := append(append([]byte{}, encoded...), trailer...)

	cr := &countingReader{r: bytes.NewReader(padded)}
	decoded, err := Decode(cr)
	require.NoError(t, err)
	require.Equal(t, data, decoded)

	require.Less(t, cr.n, len(padded),
		"decoder must not drain the data that follows the stream")
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 100)))
	require.ErrorIs(t, err, ErrTruncatedStream)
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	data := bytes.Repeat([]byte("hello world"), 50)
	encoded, err := Encode(bytes.NewReader(data))
	require.NoError(t, err)

	truncated := encoded[:len(encoded)-3]
	_, err = Decode(bytes.NewReader(truncated))
	require.ErrorIs(t, err, ErrTruncatedStream)
}

func TestDecodeRejectsMalformedLengthTable(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(make([]byte, 8)) // N = 0, irrelevant here
	lengths := make([]byte, 256)
	lengths[0], lengths[1], lengths[2], lengths[3] = 1, 1, 1, 1 // over-full
	stream.Write(lengths)

	_, err := Decode(&stream)
	require.ErrorIs(t, err, ErrInvalidLengths)
}

func TestCorruptedPayloadDoesNotCrash(t *testing.T) {
	data := []byte("AAAABBC")
	encoded, err := Encode(bytes.NewReader(data))
	require.NoError(t, err)

	corrupted := append([]byte{}, encoded...)
	corrupted[264] ^= 0x80 // flip the payload's first bit

	require.NotPanics(t, func() {
		_, err := Decode(bytes.NewReader(corrupted))
		if err != nil {
			require.True(t,
				errors.Is(err, ErrUnmatchedWindow) || errors.Is(err, ErrTruncatedStream),
				"unexpected error type: %v", err)
		}
	})
}
