//go:build !unix

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
	"fmt"
	"io"
	"os"
)

// NewMmapFile reads the whole file into memory on platforms without mmap.
func NewMmapFile(filePath string, maxSize int64) (*MmapFile, error) {
	f, size, err := open(filePath, maxSize)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return &MmapFile{
		Data:     data,
		File:     f,
		FileSize: size,
	}, nil
}

func openFile(path string) (*os.File, error) {
	return os.Open(path)
}
