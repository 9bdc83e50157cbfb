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

// Sub-block chains are sequences of (n, n bytes) blocks with 1 <= n <= 255,
// terminated by a zero-length block.

// readBlock reads a single sub-block. A nil slice means the terminator
// was consumed.
func (r *reader) readBlock() ([]byte, error) {
	n, err := r.ReadByte()
	if n == 0 || err != nil {
		return nil, err
	}
	return r.ReadFull(int(n))
}

// readSubBlocks appends the payload of the whole chain to dst and returns
// the extended slice. The cursor is left past the terminator.
func (r *reader) readSubBlocks(dst []byte) ([]byte, error) {
	for {
		b, err := r.readBlock()
		if err != nil {
			return dst, err
		}
		if b == nil {
			return dst, nil
		}
		dst = append(dst, b...)
	}
}

// skipSubBlocks consumes a chain without keeping its payload.
func (r *reader) skipSubBlocks() error {
	for {
		n, err := r.ReadByte()
		if n == 0 || err != nil {
			return err
		}
		if err := r.Discard(int(n)); err != nil {
			return err
		}
	}
}

// splitSubBlocks reads a chain keeping block boundaries, as needed by
// application extensions.
func (r *reader) splitSubBlocks() ([][]byte, error) {
	var blocks [][]byte
	for {
		b, err := r.readBlock()
		if err != nil {
			return nil, err
		}
		if b == nil {
			return blocks, nil
		}
		data := make([]byte, len(b))
		copy(data, b)
		blocks = append(blocks, data)
	}
}
