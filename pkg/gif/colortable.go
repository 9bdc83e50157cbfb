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

import (
	"fmt"
	"image/color"
)

// RGB is a single color table entry.
type RGB struct {
	R, G, B uint8
}

// ColorTable is a global or local color table. Its length is always a
// power of two between 2 and 256.
type ColorTable []RGB

func colorTableLen(fields byte) int {
	return 1 << (1 + uint(fields&fColorTableBitsMask))
}

func (r *reader) readColorTable(fields byte) (ColorTable, error) {
	n := colorTableLen(fields)
	b, err := r.ReadFull(3 * n)
	if err != nil {
		return nil, fmt.Errorf("gif: reading color table: %w", err)
	}
	ct := make(ColorTable, n)
	for i := range ct {
		ct[i] = RGB{b[3*i], b[3*i+1], b[3*i+2]}
	}
	return ct, nil
}

var transparentColor = color.NRGBA{}

// colorResolver maps color indices of one frame to canvas colors.
type colorResolver struct {
	table       ColorTable
	transparent int // -1 when the frame has no transparent index
}

// newColorResolver picks the local table when present and falls back to
// the global one.
func newColorResolver(global, local ColorTable, gce *GraphicControlExtension) (colorResolver, error) {
	table := local
	if table == nil {
		table = global
	}
	if table == nil {
		return colorResolver{}, ErrMissingColorTable
	}

	res := colorResolver{table: table, transparent: -1}
	if gce != nil && gce.HasTransparency {
		res.transparent = int(gce.TransparentIndex)
	}
	return res, nil
}

// resolve returns a zero alpha color for the transparent index. Indices
// beyond the table resolve to opaque black.
func (c colorResolver) resolve(idx uint8) color.NRGBA {
	if int(idx) == c.transparent {
		return transparentColor
	}
	if int(idx) >= len(c.table) {
		return color.NRGBA{A: 0xFF}
	}
	e := c.table[idx]
	return color.NRGBA{R: e.R, G: e.G, B: e.B, A: 0xFF}
}
