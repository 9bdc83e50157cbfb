package gif_test

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
	"math/bits"

	"github.com/ostafen/gifdec/pkg/gif"
)

// gifBuilder assembles GIF streams block by block for tests.
type gifBuilder struct {
	buf        bytes.Buffer
	globalSize int
}

func newGIF(version string, width, height int, global []gif.RGB) *gifBuilder {
	b := &gifBuilder{globalSize: len(global)}
	b.buf.WriteString(version)
	b.u16(width)
	b.u16(height)

	var fields byte
	if len(global) > 0 {
		fields = 0x80 | 0x70 | tableBits(len(global))
	}
	b.buf.WriteByte(fields)
	b.buf.WriteByte(0) // background
	b.buf.WriteByte(0) // aspect ratio
	b.colorTable(global)
	return b
}

func (b *gifBuilder) u16(v int) {
	b.buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(v)))
}

func (b *gifBuilder) colorTable(ct []gif.RGB) {
	for _, c := range ct {
		b.buf.Write([]byte{c.R, c.G, c.B})
	}
}

// gce writes a graphic control extension. A negative transparent index
// leaves the transparency flag unset.
func (b *gifBuilder) gce(disposal gif.DisposalMethod, delay uint16, transparent int) *gifBuilder {
	flags := byte(disposal) << 2
	idx := byte(0)
	if transparent >= 0 {
		flags |= 1
		idx = byte(transparent)
	}
	b.buf.Write([]byte{0x21, 0xF9, 4, flags, byte(delay), byte(delay >> 8), idx, 0})
	return b
}

func (b *gifBuilder) comment(chunks ...[]byte) *gifBuilder {
	b.buf.Write([]byte{0x21, 0xFE})
	for _, c := range chunks {
		b.buf.WriteByte(byte(len(c)))
		b.buf.Write(c)
	}
	b.buf.WriteByte(0)
	return b
}

func (b *gifBuilder) application(id string, blocks ...[]byte) *gifBuilder {
	b.buf.Write([]byte{0x21, 0xFF, byte(len(id))})
	b.buf.WriteString(id)
	for _, blk := range blocks {
		b.buf.WriteByte(byte(len(blk)))
		b.buf.Write(blk)
	}
	b.buf.WriteByte(0)
	return b
}

func (b *gifBuilder) extension(label byte, payload []byte) *gifBuilder {
	b.buf.Write([]byte{0x21, label})
	b.buf.Write(subBlocks(payload))
	return b
}

type frameSpec struct {
	left, top, width, height int
	local                    []gif.RGB
	interlaced               bool
	indices                  []byte // row-major, natural order
}

func (b *gifBuilder) image(f frameSpec) *gifBuilder {
	b.buf.WriteByte(0x2C)
	b.u16(f.left)
	b.u16(f.top)
	b.u16(f.width)
	b.u16(f.height)

	var fields byte
	if len(f.local) > 0 {
		fields |= 0x80 | tableBits(len(f.local))
	}
	if f.interlaced {
		fields |= 0x40
	}
	b.buf.WriteByte(fields)
	b.colorTable(f.local)

	size := b.globalSize
	if len(f.local) > 0 {
		size = len(f.local)
	}
	litWidth := max(2, bits.Len(uint(size))-1)

	indices := f.indices
	if f.interlaced {
		indices = interlace(indices, f.width, f.height)
	}
	b.buf.WriteByte(byte(litWidth))
	b.buf.Write(subBlocks(compress(litWidth, indices)))
	return b
}

// rawImage writes an image descriptor followed by an already compressed stream.
func (b *gifBuilder) rawImage(width, height, litWidth int, data []byte) *gifBuilder {
	b.buf.WriteByte(0x2C)
	b.u16(0)
	b.u16(0)
	b.u16(width)
	b.u16(height)
	b.buf.WriteByte(0)
	b.buf.WriteByte(byte(litWidth))
	b.buf.Write(subBlocks(data))
	return b
}

func (b *gifBuilder) trailer() []byte {
	b.buf.WriteByte(0x3B)
	return b.buf.Bytes()
}

// bytes returns the stream without a trailer.
func (b *gifBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func tableBits(n int) byte {
	return byte(bits.Len(uint(n)) - 2)
}

func subBlocks(data []byte) []byte {
	var out []byte
	for len(data) > 0 {
		n := min(len(data), 255)
		out = append(out, byte(n))
		out = append(out, data[:n]...)
		data = data[n:]
	}
	return append(out, 0)
}

func compress(litWidth int, indices []byte) []byte {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
	if _, err := w.Write(indices); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func interlace(indices []byte, width, height int) []byte {
	out := make([]byte, 0, len(indices))
	for _, pass := range [][2]int{{0, 8}, {4, 8}, {2, 4}, {1, 2}} {
		for y := pass[0]; y < height; y += pass[1] {
			out = append(out, indices[y*width:(y+1)*width]...)
		}
	}
	return out
}

func fill(n int, idx byte) []byte {
	return bytes.Repeat([]byte{idx}, n)
}
