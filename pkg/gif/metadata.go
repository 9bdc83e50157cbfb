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
	"log/slog"
)

// CommentsProperty is the name under which comment extensions are recorded.
const CommentsProperty = "Comments"

// Property is a piece of textual metadata, in the order it was found.
type Property struct {
	Name  string
	Value string
}

// readComment always consumes the chain; the text is only decoded and
// recorded when metadata is not ignored.
func (d *decoder) readComment() error {
	raw, err := d.r.readSubBlocks(d.text[:0])
	d.text = raw
	if err != nil {
		return fmt.Errorf("gif: reading comment extension: %w", err)
	}
	if d.cfg.IgnoreMetadata {
		return nil
	}

	s, err := d.textDecoder.Bytes(raw)
	if err != nil {
		return fmt.Errorf("gif: decoding comment extension: %w", err)
	}
	d.properties = append(d.properties, Property{Name: CommentsProperty, Value: string(s)})
	d.log.Debug("comment", slog.Int("bytes", len(raw)))
	return nil
}

// readPlainText skips the text grid header and the text. Plain text is
// never rendered nor recorded.
func (d *decoder) readPlainText() error {
	if err := d.r.skipSubBlocks(); err != nil {
		return fmt.Errorf("gif: reading plain text extension: %w", err)
	}
	return nil
}

func (d *decoder) readApplication() error {
	id, err := d.r.readBlock()
	if err != nil {
		return fmt.Errorf("gif: reading application extension: %w", err)
	}
	// Identifiers are 11 bytes long, but Adobe sometimes writes 10.
	if len(id) < appIdentifierLen-1 {
		return fmt.Errorf("gif: %w: application identifier of %d bytes", ErrMalformedBlock, len(id))
	}
	ext := ApplicationExtension{
		Identifier: string(id[:8]),
		AuthCode:   string(id[8:]),
	}

	ext.SubBlocks, err = d.r.splitSubBlocks()
	if err != nil {
		return fmt.Errorf("gif: reading application extension: %w", err)
	}

	// NETSCAPE2.0 (or its ANIMEXTS1.0 twin) with sub-block id 1 carries the loop count.
	switch string(id) {
	case "NETSCAPE2.0", "ANIMEXTS1.0":
		if len(ext.SubBlocks) > 0 {
			if b := ext.SubBlocks[0]; len(b) == 3 && b[0] == 1 {
				d.loopCount = int(b[1]) | int(b[2])<<8
			}
		}
	}

	d.log.Debug("application extension",
		slog.String("id", ext.Identifier+ext.AuthCode),
		slog.Int("sub_blocks", len(ext.SubBlocks)),
	)
	if d.cfg.OnApplication != nil {
		d.cfg.OnApplication(ext)
	}
	return nil
}
