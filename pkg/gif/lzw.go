// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package gif

import "fmt"

// GIF variant of LZW: codes are packed LSB first, the code width grows
// as soon as the next free slot no longer fits ("early change"), and
// the dictionary is capped at 12 bits.

const (
	lzwMaxWidth = 12
	lzwMaxCodes = 1 << lzwMaxWidth

	lzwMinLitWidth = 2
	lzwMaxLitWidth = 8
)

// lzwDecoder holds the dictionary. It is reused for every frame of a
// session so tables are allocated once.
type lzwDecoder struct {
	prefix [lzwMaxCodes]uint16
	suffix [lzwMaxCodes]uint8
	stack  [lzwMaxCodes]uint8 // scratch for expanding a code, filled backwards

	// bit buffer
	src   []byte
	pos   int
	bits  uint32
	nBits uint
}

func (d *lzwDecoder) readCode(width uint) (int, bool) {
	for d.nBits < width {
		if d.pos >= len(d.src) {
			return 0, false
		}
		d.bits |= uint32(d.src[d.pos]) << d.nBits
		d.pos++
		d.nBits += 8
	}
	code := int(d.bits & (1<<width - 1))
	d.bits >>= width
	d.nBits -= width
	return code, true
}

// expand writes the string for code into the tail of d.stack and returns it.
func (d *lzwDecoder) expand(code, clearCode int) []byte {
	i := len(d.stack)
	for code >= clearCode {
		i--
		d.stack[i] = d.suffix[code]
		code = int(d.prefix[code])
	}
	i--
	d.stack[i] = uint8(code)
	return d.stack[i:]
}

// decode decompresses src into dst and returns the number of indices
// written. Decoding stops at the end-of-information code, at the end of
// src, or once dst is full; anything past that point is ignored.
func (d *lzwDecoder) decode(src []byte, litWidth int, dst []byte) (int, error) {
	if litWidth < lzwMinLitWidth || litWidth > lzwMaxLitWidth {
		return 0, fmt.Errorf("%w: minimum code size %d out of range", ErrInvalidCompressedData, litWidth)
	}

	d.src, d.pos, d.bits, d.nBits = src, 0, 0, 0
	defer func() { d.src = nil }()

	var (
		clearCode = 1 << litWidth
		eoiCode   = clearCode + 1
		next      = clearCode + 2
		width     = uint(litWidth + 1)
		prev      = -1
		n         = 0
	)

	for n < len(dst) {
		code, ok := d.readCode(width)
		if !ok {
			break
		}

		switch {
		case code == clearCode:
			next = clearCode + 2
			width = uint(litWidth + 1)
			prev = -1
			continue
		case code == eoiCode:
			return n, nil
		case prev == -1:
			if code > clearCode {
				return n, fmt.Errorf("%w: code %d after clear code", ErrInvalidCompressedData, code)
			}
			dst[n] = uint8(code)
			n++
			prev = code
			continue
		}

		var (
			s     []byte
			first uint8
		)
		switch {
		case code < next:
			s = d.expand(code, clearCode)
			first = s[0]
		case code == next:
			s = d.expand(prev, clearCode)
			first = s[0]
		default:
			return n, fmt.Errorf("%w: code %d references unpopulated slot (next %d)", ErrInvalidCompressedData, code, next)
		}

		n += copy(dst[n:], s)
		if code == next && n < len(dst) {
			dst[n] = first
			n++
		}

		if next < lzwMaxCodes {
			d.prefix[next] = uint16(prev)
			d.suffix[next] = first
			next++
			if next == 1<<width && width < lzwMaxWidth {
				width++
			}
		}
		prev = code
	}
	return n, nil
}
