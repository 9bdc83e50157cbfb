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
package mmap

import (
	"errors"
	"fmt"
	"os"
)

// ErrFileTooLarge is returned when the input exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

// MmapFile is a read-only view of a whole file.
type MmapFile struct {
	Data     []byte   // The mapped bytes
	File     *os.File // The underlying opened file
	FileSize int      // Total size of the underlying file

	unmap func([]byte) error // nil when Data is a plain heap copy
}

func open(filePath string, maxSize int64) (*os.File, int, error) {
	f, err := openFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, 0, fmt.Errorf("%q is a directory", filePath)
	}

	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, 0, fmt.Errorf("file %q is empty, cannot mmap", filePath)
	}
	if maxSize > 0 && size > maxSize {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrFileTooLarge, filePath, size, maxSize)
	}
	return f, int(size), nil
}

func (mf *MmapFile) Close() error {
	var err error
	if mf.Data != nil && mf.unmap != nil {
		err = mf.unmap(mf.Data)
		if err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
	}
	mf.Data = nil

	if mf.File != nil {
		closeErr := mf.File.Close()
		if closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		mf.File = nil
	}
	return nil
}
