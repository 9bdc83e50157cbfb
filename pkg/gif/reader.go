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

// reader is a forward-only cursor over the input bytes.
// Every short read is reported as ErrTruncatedInput.
type reader struct {
	buf []byte
	n   int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) ReadByte() (byte, error) {
	if r.n >= len(r.buf) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrTruncatedInput, r.n)
	}
	b := r.buf[r.n]
	r.n++
	return b, nil
}

// ReadFull returns the next n bytes. The returned slice aliases the input
// and must not be modified.
func (r *reader) ReadFull(n int) ([]byte, error) {
	if n > len(r.buf)-r.n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedInput, n, r.n, len(r.buf)-r.n)
	}
	b := r.buf[r.n : r.n+n]
	r.n += n
	return b, nil
}

func (r *reader) Discard(n int) error {
	_, err := r.ReadFull(n)
	return err
}

func (r *reader) Offset() int {
	return r.n
}
