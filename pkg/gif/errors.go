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

import "errors"

// Errors returned by Decode. They are always wrapped with the operation
// and the input offset, so they must be matched with errors.Is.
var (
	// ErrInvalidSignature means the first six bytes are neither "GIF87a" nor "GIF89a".
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrTruncatedInput means a fixed-size field or a sub-block ran past the end of input.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedBlock means an unknown top-level block marker or an
	// extension whose fixed part is malformed.
	ErrMalformedBlock = errors.New("malformed block")

	// ErrInvalidCompressedData means the LZW stream referenced a dictionary
	// slot that was never populated, or declared an unusable code size.
	ErrInvalidCompressedData = errors.New("invalid compressed data")

	// ErrMissingColorTable means a frame has neither a local nor a global color table.
	ErrMissingColorTable = errors.New("missing color table")

	// ErrImageTooLarge means the canvas or a frame exceeds Config.MaxPixels.
	ErrImageTooLarge = errors.New("image too large")
)
