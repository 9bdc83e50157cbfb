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
	"time"
)

// Section indicators.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

// Extensions.
const (
	eText           = 0x01 // Plain Text
	eGraphicControl = 0xF9 // Graphic Control
	eComment        = 0xFE // Comment
	eApplication    = 0xFF // Application
)

// Masks
const (
	// Fields.
	fColorTable         = 1 << 7
	fColorResolution    = 7 << 4
	fSort               = 1 << 3
	fInterlace          = 1 << 6
	fImageSort          = 1 << 5
	fColorTableBitsMask = 7

	// Graphic control flags.
	gcTransparentColorSet = 1 << 0
	gcUserInputSet        = 1 << 1
	gcDisposalMethodMask  = 7 << 2
)

const (
	version87a = "GIF87a"
	version89a = "GIF89a"

	headerLen         = 6
	screenDescLen     = 7
	imageDescLen      = 9
	graphicControlLen = 4
	appIdentifierLen  = 11
)

// DisposalMethod tells how the area of a frame is treated before the next
// frame is drawn.
type DisposalMethod uint8

const (
	DisposalNone              DisposalMethod = 0
	DisposalDoNotDispose      DisposalMethod = 1
	DisposalRestoreBackground DisposalMethod = 2
	DisposalRestorePrevious   DisposalMethod = 3
)

func (m DisposalMethod) String() string {
	switch m {
	case DisposalNone:
		return "none"
	case DisposalDoNotDispose:
		return "do-not-dispose"
	case DisposalRestoreBackground:
		return "restore-to-background"
	case DisposalRestorePrevious:
		return "restore-to-previous"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(m))
	}
}

// LogicalScreenDescriptor describes the canvas shared by all frames.
type LogicalScreenDescriptor struct {
	Width, Height        int
	HasGlobalColorTable  bool
	ColorResolution      int // bits per primary color, 1..8
	Sorted               bool
	GlobalColorTableSize int // number of entries, 0 when absent
	BackgroundIndex      uint8
	PixelAspectRatio     uint8
}

// Header is everything that precedes the first block: the version, the
// logical screen descriptor and the optional global color table.
type Header struct {
	Version          string
	Screen           LogicalScreenDescriptor
	GlobalColorTable ColorTable
}

// GraphicControlExtension applies to the next image descriptor only.
type GraphicControlExtension struct {
	Disposal         DisposalMethod
	UserInput        bool
	HasTransparency  bool
	TransparentIndex uint8
	DelayTime        uint16 // hundredths of a second
}

// ImageDescriptor is the fixed part of an image block.
type ImageDescriptor struct {
	Left, Top           int
	Width, Height       int
	HasLocalColorTable  bool
	Interlaced          bool
	Sorted              bool
	LocalColorTableSize int
}

// ApplicationExtension is passed to Config.OnApplication.
type ApplicationExtension struct {
	Identifier string // 8 bytes
	AuthCode   string // 3 bytes
	SubBlocks  [][]byte
}

func parseScreenDescriptor(b []byte) LogicalScreenDescriptor {
	fields := b[4]
	sd := LogicalScreenDescriptor{
		Width:               int(b[0]) | int(b[1])<<8,
		Height:              int(b[2]) | int(b[3])<<8,
		HasGlobalColorTable: fields&fColorTable != 0,
		ColorResolution:     int((fields&fColorResolution)>>4) + 1,
		Sorted:              fields&fSort != 0,
		PixelAspectRatio:    b[6],
	}
	if sd.HasGlobalColorTable {
		sd.GlobalColorTableSize = colorTableLen(fields)
		sd.BackgroundIndex = b[5]
	}
	return sd
}

func parseImageDescriptor(b []byte) ImageDescriptor {
	fields := b[8]
	id := ImageDescriptor{
		Left:               int(b[0]) | int(b[1])<<8,
		Top:                int(b[2]) | int(b[3])<<8,
		Width:              int(b[4]) | int(b[5])<<8,
		Height:             int(b[6]) | int(b[7])<<8,
		HasLocalColorTable: fields&fColorTable != 0,
		Interlaced:         fields&fInterlace != 0,
		Sorted:             fields&fImageSort != 0,
	}
	if id.HasLocalColorTable {
		id.LocalColorTableSize = colorTableLen(fields)
	}
	return id
}

func parseGraphicControl(b []byte) *GraphicControlExtension {
	flags := b[0]
	return &GraphicControlExtension{
		Disposal:         DisposalMethod((flags & gcDisposalMethodMask) >> 2),
		UserInput:        flags&gcUserInputSet != 0,
		HasTransparency:  flags&gcTransparentColorSet != 0,
		DelayTime:        uint16(b[1]) | uint16(b[2])<<8,
		TransparentIndex: b[3],
	}
}

// readHeader reads the signature, the logical screen descriptor and the
// global color table.
func (r *reader) readHeader() (*Header, error) {
	sig, err := r.ReadFull(headerLen)
	if err != nil {
		return nil, fmt.Errorf("gif: reading header: %w", err)
	}
	version := string(sig)
	if version != version87a && version != version89a {
		return nil, fmt.Errorf("gif: %w: can't recognize format %q", ErrInvalidSignature, version)
	}

	b, err := r.ReadFull(screenDescLen)
	if err != nil {
		return nil, fmt.Errorf("gif: reading logical screen descriptor: %w", err)
	}

	hdr := &Header{
		Version: version,
		Screen:  parseScreenDescriptor(b),
	}
	if hdr.Screen.HasGlobalColorTable {
		// b aliases the input, so the fields byte is still valid here.
		hdr.GlobalColorTable, err = r.readColorTable(b[4])
		if err != nil {
			return nil, err
		}
	}
	return hdr, nil
}

// readGraphicControl parses the extension body. The payload is read as a
// sub-block chain so the cursor stays in sync even with oversized blocks.
func (r *reader) readGraphicControl(scratch []byte) (*GraphicControlExtension, error) {
	b, err := r.readSubBlocks(scratch[:0])
	if err != nil {
		return nil, fmt.Errorf("gif: reading graphic control: %w", err)
	}
	if len(b) < graphicControlLen {
		return nil, fmt.Errorf("gif: %w: graphic control payload of %d bytes", ErrMalformedBlock, len(b))
	}
	return parseGraphicControl(b), nil
}

// Delay returns the frame delay as a duration.
func (g *GraphicControlExtension) Delay() time.Duration {
	return time.Duration(g.DelayTime) * 10 * time.Millisecond
}
