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
	"image"
	"image/color"
	"log/slog"
	"time"
)

// Frame is one fully composited animation frame.
type Frame struct {
	Image      *image.NRGBA    // Snapshot of the whole canvas after drawing this frame
	Bounds     image.Rectangle // Area covered by the frame, clipped to the canvas
	DelayTime  uint16          // Delay in hundredths of a second
	Disposal   DisposalMethod  // What happens to Bounds before the next frame is drawn
	UserInput  bool
	Interlaced bool
}

// Delay returns the frame delay as a duration.
func (f *Frame) Delay() time.Duration {
	return time.Duration(f.DelayTime) * 10 * time.Millisecond
}

// interlaceScan defines the ordering for a pass of the interlace algorithm.
type interlaceScan struct {
	start, skip int
}

// interlacing represents the set of scans in an interlaced GIF image.
var interlacing = [...]interlaceScan{
	{0, 8}, // Group 1 : Every 8th. row, starting with row 0.
	{4, 8}, // Group 2 : Every 8th. row, starting with row 4.
	{2, 4}, // Group 3 : Every 4th. row, starting with row 2.
	{1, 2}, // Group 4 : Every 2nd. row, starting with row 1.
}

// canvas is the logical screen of a decode session. Frames are drawn on
// it in file order, after the previous frame has been disposed.
type canvas struct {
	img *image.NRGBA

	// restore-to-previous snapshot. It has the canvas layout but only the
	// rectangle of the frame that requested it is meaningful.
	saved []uint8

	prevBounds   image.Rectangle
	prevDisposal DisposalMethod

	indices []uint8 // color indices of the frame being decoded
	rows    []int   // destination row of each decoded row
}

func newCanvas(width, height int) *canvas {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	return &canvas{
		img:   img,
		saved: make([]uint8, len(img.Pix)),
	}
}

// frameIndices returns a buffer for n color indices, reusing the previous one.
func (c *canvas) frameIndices(n int) []uint8 {
	if cap(c.indices) < n {
		c.indices = make([]uint8, n)
	}
	return c.indices[:n]
}

// copyRect copies the pixels of r from src to dst. Both buffers share the
// canvas layout.
func (c *canvas) copyRect(dst, src []uint8, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		from := c.img.PixOffset(r.Min.X, y)
		to := c.img.PixOffset(r.Max.X, y)
		copy(dst[from:to], src[from:to])
	}
}

// dispose applies the disposal method of the previous frame.
func (c *canvas) dispose() {
	r := c.prevBounds
	switch c.prevDisposal {
	case DisposalRestoreBackground:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			clear(c.img.Pix[c.img.PixOffset(r.Min.X, y):c.img.PixOffset(r.Max.X, y)])
		}
	case DisposalRestorePrevious:
		c.copyRect(c.img.Pix, c.saved, r)
	}
	c.prevBounds = image.Rectangle{}
	c.prevDisposal = DisposalNone
}

// rowOrder returns the destination row of every decoded row.
func (c *canvas) rowOrder(height int, interlaced bool) []int {
	rows := c.rows[:0]
	if !interlaced {
		for y := 0; y < height; y++ {
			rows = append(rows, y)
		}
	} else {
		for _, pass := range interlacing {
			for y := pass.start; y < height; y += pass.skip {
				rows = append(rows, y)
			}
		}
	}
	c.rows = rows
	return rows
}

// draw composites the frame described by id onto the canvas and returns
// the clipped area it covers. Parts of the frame outside the canvas are
// dropped and transparent pixels keep the canvas value.
func (c *canvas) draw(id ImageDescriptor, pix []uint8, res colorResolver, disposal DisposalMethod) image.Rectangle {
	bounds := image.Rect(id.Left, id.Top, id.Left+id.Width, id.Top+id.Height).Intersect(c.img.Rect)

	if disposal == DisposalRestorePrevious {
		c.copyRect(c.saved, c.img.Pix, bounds)
	}
	c.prevBounds = bounds
	c.prevDisposal = disposal

	if bounds.Empty() {
		return bounds
	}

	var lut [256]color.NRGBA
	for i := range lut {
		lut[i] = res.resolve(uint8(i))
	}

	visible := bounds.Dx()
	for i, dy := range c.rowOrder(id.Height, id.Interlaced) {
		y := id.Top + dy
		if y >= bounds.Max.Y {
			continue
		}
		src := pix[i*id.Width : i*id.Width+visible]
		dst := c.img.Pix[c.img.PixOffset(id.Left, y):]
		for x, idx := range src {
			col := lut[idx]
			if col.A == 0 {
				continue
			}
			p := dst[4*x : 4*x+4 : 4*x+4]
			p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
		}
	}
	return bounds
}

func (c *canvas) snapshot() *image.NRGBA {
	img := image.NewNRGBA(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return img
}

// readImage decodes one image block and folds it into the canvas. The
// pending graphic control extension, if any, is consumed.
func (d *decoder) readImage() error {
	frameNum := len(d.frames)

	b, err := d.r.ReadFull(imageDescLen)
	if err != nil {
		return fmt.Errorf("gif: reading image descriptor: %w", err)
	}
	id := parseImageDescriptor(b)

	var local ColorTable
	if id.HasLocalColorTable {
		if local, err = d.r.readColorTable(b[8]); err != nil {
			return err
		}
	}

	if d.cfg.Strict && !image.Rect(id.Left, id.Top, id.Left+id.Width, id.Top+id.Height).In(d.canvas.img.Rect) {
		return fmt.Errorf("gif: frame %d: %w: frame exceeds %dx%d canvas", frameNum, ErrMalformedBlock, d.hdr.Screen.Width, d.hdr.Screen.Height)
	}

	res, err := newColorResolver(d.hdr.GlobalColorTable, local, d.gce)
	if err != nil {
		return fmt.Errorf("gif: frame %d: %w", frameNum, err)
	}

	if int64(id.Width)*int64(id.Height) > int64(d.cfg.MaxPixels) {
		return fmt.Errorf("gif: frame %d: %w: %dx%d exceeds %d pixels", frameNum, ErrImageTooLarge, id.Width, id.Height, d.cfg.MaxPixels)
	}

	litWidth, err := d.r.ReadByte()
	if err != nil {
		return fmt.Errorf("gif: reading image data: %w", err)
	}
	if d.data, err = d.r.readSubBlocks(d.data[:0]); err != nil {
		return fmt.Errorf("gif: reading image data: %w", err)
	}

	pix := d.canvas.frameIndices(id.Width * id.Height)
	n, err := d.lzw.decode(d.data, int(litWidth), pix)
	if err != nil {
		return fmt.Errorf("gif: decoding frame %d: %w", frameNum, err)
	}
	if n < len(pix) {
		if d.cfg.Strict {
			return fmt.Errorf("gif: frame %d: %w: %d of %d pixels", frameNum, ErrInvalidCompressedData, n, len(pix))
		}
		// Missing indices are treated as index 0.
		clear(pix[n:])
		d.log.Debug("short image data", slog.Int("frame", frameNum), slog.Int("want", len(pix)), slog.Int("got", n))
	}

	frame := Frame{Interlaced: id.Interlaced}
	if d.gce != nil {
		frame.DelayTime = d.gce.DelayTime
		frame.Disposal = d.gce.Disposal
		frame.UserInput = d.gce.UserInput
	}

	d.canvas.dispose()
	frame.Bounds = d.canvas.draw(id, pix, res, frame.Disposal)
	frame.Image = d.canvas.snapshot()

	d.log.Debug("frame",
		slog.Int("frame", frameNum),
		slog.String("bounds", frame.Bounds.String()),
		slog.Bool("interlaced", id.Interlaced),
		slog.Bool("local_color_table", id.HasLocalColorTable),
		slog.String("disposal", frame.Disposal.String()),
	)

	d.frames = append(d.frames, frame)
	d.gce = nil
	return nil
}
