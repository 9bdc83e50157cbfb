package gif

import (
	"bytes"
	"compress/lzw"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func lzwCompress(t *testing.T, litWidth int, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// codeWriter packs codes LSB first.
type codeWriter struct {
	out   []byte
	bits  uint32
	nBits uint
}

func (w *codeWriter) write(code int, width uint) {
	w.bits |= uint32(code) << w.nBits
	w.nBits += width
	for w.nBits >= 8 {
		w.out = append(w.out, byte(w.bits))
		w.bits >>= 8
		w.nBits -= 8
	}
}

func (w *codeWriter) flush() []byte {
	if w.nBits > 0 {
		w.out = append(w.out, byte(w.bits))
	}
	return w.out
}

func TestLZWRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	var d lzwDecoder
	for litWidth := lzwMinLitWidth; litWidth <= lzwMaxLitWidth; litWidth++ {
		// Long runs mixed with noise both fill the dictionary and hit the
		// code == next case.
		data := make([]byte, 20000)
		for i := range data {
			if (i/500)%2 == 0 {
				data[i] = byte(rnd.Intn(1 << litWidth))
			} else {
				data[i] = byte((i / 500) % (1 << litWidth))
			}
		}

		dst := make([]byte, len(data))
		n, err := d.decode(lzwCompress(t, litWidth, data), litWidth, dst)
		require.NoError(t, err, "lit width %d", litWidth)
		require.Equal(t, len(data), n)
		require.Equal(t, data, dst, "lit width %d", litWidth)
	}
}

func TestLZWRepeatedSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{1}, 1000)

	var d lzwDecoder
	dst := make([]byte, len(data))
	n, err := d.decode(lzwCompress(t, 2, data), 2, dst)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, dst)
}

func TestLZWDeferredClear(t *testing.T) {
	const litWidth = 8

	var (
		w         codeWriter
		clearCode = 1 << litWidth
		next      = clearCode + 2
		width     = uint(litWidth + 1)
	)

	// Literals only, well past the point where the dictionary is full,
	// without ever emitting a clear code.
	data := make([]byte, 6000)
	for i := range data {
		data[i] = byte(i * 31)
	}

	w.write(clearCode, width)
	for i, b := range data {
		w.write(int(b), width)
		if i > 0 && next < lzwMaxCodes {
			next++
			if next == 1<<width && width < lzwMaxWidth {
				width++
			}
		}
	}
	w.write(clearCode+1, width)
	src := w.flush()

	var d lzwDecoder
	dst := make([]byte, len(data))
	n, err := d.decode(src, litWidth, dst)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, dst)

	// The standard library reader agrees on the bit layout.
	std, err := io.ReadAll(lzw.NewReader(bytes.NewReader(src), lzw.LSB, litWidth))
	require.NoError(t, err)
	require.Equal(t, data, std)
}

func TestLZWStopsWhenFull(t *testing.T) {
	data := []byte{0, 1, 2, 3, 3, 2, 1, 0}

	var d lzwDecoder
	dst := make([]byte, 5)
	n, err := d.decode(lzwCompress(t, 2, data), 2, dst)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, data[:5], dst)
}

func TestLZWShortStream(t *testing.T) {
	data := []byte{3, 2, 1}

	var d lzwDecoder
	dst := make([]byte, 10)
	n, err := d.decode(lzwCompress(t, 2, data), 2, dst)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, data, dst[:n])

	// Input that ends before the end-of-information code.
	n, err = d.decode(nil, 2, dst)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLZWInvalidCode(t *testing.T) {
	var d lzwDecoder
	dst := make([]byte, 16)

	var w codeWriter
	w.write(4, 3) // clear
	w.write(1, 3)
	w.write(7, 3) // next is 6
	_, err := d.decode(w.flush(), 2, dst)
	require.ErrorIs(t, err, ErrInvalidCompressedData)

	w = codeWriter{}
	w.write(4, 3)
	w.write(6, 3) // no previous code
	_, err = d.decode(w.flush(), 2, dst)
	require.ErrorIs(t, err, ErrInvalidCompressedData)

	for _, litWidth := range []int{0, 1, 9} {
		_, err = d.decode([]byte{0}, litWidth, dst)
		require.ErrorIs(t, err, ErrInvalidCompressedData)
	}
}

func TestLZWDecoderReuse(t *testing.T) {
	var d lzwDecoder

	a := bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 300)
	b := bytes.Repeat([]byte{7, 7, 6, 6}, 300)

	for _, data := range [][]byte{a, b, a} {
		dst := make([]byte, len(data))
		_, err := d.decode(lzwCompress(t, 3, data), 3, dst)
		require.NoError(t, err)
		require.Equal(t, data, dst)
	}
}
