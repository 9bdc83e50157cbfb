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

// Package gif decodes GIF87a and GIF89a images into fully composited
// frames of non-premultiplied RGBA pixels, together with their animation
// timing and textual metadata.
//
// A decode session is a single forward pass over the input bytes. The
// canvas, the color tables and the pending graphic control extension are
// owned by the session, so independent images may be decoded concurrently.
package gif

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"

	"golang.org/x/text/encoding"
)

// Image is the result of a decode session.
type Image struct {
	Header

	Frames     []Frame    // In display order
	Properties []Property // Textual metadata, empty when Config.IgnoreMetadata is set
	LoopCount  int        // From the NETSCAPE2.0 extension, -1 if absent
	BytesRead  int        // Offset just past the trailer
}

// Bounds returns the canvas rectangle.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Screen.Width, img.Screen.Height)
}

type decoder struct {
	r           *reader
	cfg         Config
	log         *slog.Logger
	textDecoder *encoding.Decoder

	hdr    *Header
	gce    *GraphicControlExtension // pending, applies to the next image only
	canvas *canvas
	lzw    lzwDecoder

	// scratch space
	data []byte // LZW payload of the current frame
	text []byte // raw comment and graphic control bytes

	frames     []Frame
	properties []Property
	loopCount  int
}

// Decode decodes a whole GIF held in data.
func Decode(data []byte, cfg Config) (*Image, error) {
	cfg = cfg.withDefaults()

	d := &decoder{
		r:           newReader(data),
		cfg:         cfg,
		log:         cfg.Logger,
		textDecoder: cfg.TextEncoding.NewDecoder(),
		loopCount:   -1,
	}
	return d.decode()
}

// DecodeReader reads r until EOF and decodes the result.
func DecodeReader(r io.Reader, cfg Config) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gif: reading input: %w", err)
	}
	return Decode(data, cfg)
}

// DecodeHeader decodes only the header, the logical screen descriptor and
// the global color table.
func DecodeHeader(data []byte) (*Header, error) {
	return newReader(data).readHeader()
}

// IsGIF reports whether data starts with a GIF signature.
func IsGIF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(version87a)) || bytes.HasPrefix(data, []byte(version89a))
}

func (d *decoder) decode() (*Image, error) {
	hdr, err := d.r.readHeader()
	if err != nil {
		return nil, err
	}
	d.hdr = hdr

	w, h := hdr.Screen.Width, hdr.Screen.Height
	if int64(w)*int64(h) > int64(d.cfg.MaxPixels) {
		return nil, fmt.Errorf("gif: %w: canvas %dx%d exceeds %d pixels", ErrImageTooLarge, w, h, d.cfg.MaxPixels)
	}
	d.canvas = newCanvas(w, h)

	d.log.Debug("header",
		slog.String("version", hdr.Version),
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("global_color_table", hdr.Screen.GlobalColorTableSize),
	)

	for {
		off := d.r.Offset()
		c, err := d.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("gif: reading frames: %w", err)
		}
		switch c {
		case sExtension:
			if err = d.readExtension(); err != nil {
				return nil, err
			}
		case sImageDescriptor:
			if err = d.readImage(); err != nil {
				return nil, err
			}
		case sTrailer:
			if d.gce != nil {
				d.log.Debug("unused graphic control extension", slog.Int("offset", off))
			}
			return &Image{
				Header:     *hdr,
				Frames:     d.frames,
				Properties: d.properties,
				LoopCount:  d.loopCount,
				BytesRead:  d.r.Offset(),
			}, nil
		default:
			return nil, fmt.Errorf("gif: %w: unknown block type 0x%.2x at offset %d", ErrMalformedBlock, c, off)
		}
	}
}

func (d *decoder) readExtension() error {
	off := d.r.Offset() - 1
	label, err := d.r.ReadByte()
	if err != nil {
		return fmt.Errorf("gif: reading extension: %w", err)
	}
	d.log.Debug("extension", slog.Int("offset", off), slog.String("label", fmt.Sprintf("0x%.2x", label)))

	switch label {
	case eGraphicControl:
		gce, err := d.r.readGraphicControl(d.text)
		if err != nil {
			return err
		}
		if d.gce != nil {
			d.log.Debug("graphic control extension replaced", slog.Int("offset", off))
		}
		d.gce = gce
		return nil
	case eComment:
		return d.readComment()
	case eText:
		return d.readPlainText()
	case eApplication:
		return d.readApplication()
	default:
		if err := d.r.skipSubBlocks(); err != nil {
			return fmt.Errorf("gif: reading extension 0x%.2x: %w", label, err)
		}
		return nil
	}
}
