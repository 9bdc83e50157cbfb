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
	"io"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultMaxPixels bounds the canvas and every frame when Config.MaxPixels is unset.
const DefaultMaxPixels = 1 << 26

// DefaultTextEncoding is used to decode comment extensions when
// Config.TextEncoding is nil.
var DefaultTextEncoding encoding.Encoding = charmap.ISO8859_1

// Config holds the settings of a single decode session.
// The zero value is ready to use.
type Config struct {
	IgnoreMetadata bool              // Do not record comments as properties
	TextEncoding   encoding.Encoding // Encoding of comment bytes (nil = DefaultTextEncoding)
	MaxPixels      int               // Maximum pixels per canvas or frame (<= 0 = DefaultMaxPixels)
	Logger         *slog.Logger      // Block level tracing (nil = discard)

	// Strict rejects short image data and frames that do not fit the
	// canvas instead of padding and clipping them.
	Strict bool

	// OnApplication, if set, receives every application extension in file order.
	OnApplication func(ApplicationExtension)
}

func (c Config) withDefaults() Config {
	if c.TextEncoding == nil {
		c.TextEncoding = DefaultTextEncoding
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = DefaultMaxPixels
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
