//go:build linux
// +build linux

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
package fuse

import (
	"context"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// FramesFS is a flat read-only directory of extracted frames.
type FramesFS struct {
	mtx     sync.RWMutex
	entries map[string]FileEntry
	mtime   time.Time
}

func NewFramesFS(entries []FileEntry) *FramesFS {
	m := make(map[string]FileEntry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return &FramesFS{
		entries: m,
		mtime:   time.Now(),
	}
}

func (fs *FramesFS) Root() (fs.Node, error) {
	return &Dir{
		fs: fs,
	}, nil
}

type Dir struct {
	fs *FramesFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	if e, ok := d.fs.entries[name]; ok {
		return File{
			r:     e.r,
			size:  e.Size,
			mtime: d.fs.mtime,
		}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	dirEntries := make([]fuse.Dirent, 0, len(d.fs.entries))
	for _, e := range d.fs.entries {
		dirEntries = append(dirEntries, fuse.Dirent{
			Name: e.Name,
			Type: fuse.DT_File,
		})
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	for i := range dirEntries {
		dirEntries[i].Inode = uint64(i + 2) // 1 is the root
	}
	return dirEntries, nil
}

type File struct {
	r     io.ReaderAt
	size  uint64
	mtime time.Time
}

func (f File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = f.size
	a.Mtime = f.mtime
	return nil
}

func (f File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int(req.Size)
	offset := req.Offset

	if offset >= int64(f.size) {
		// Trying to read past EOF
		resp.Data = []byte{}
		return nil
	}

	// Clamp size if reading near EOF
	if offset+int64(size) > int64(f.size) {
		size = int(int64(f.size) - offset)
	}

	buf := make([]byte, size)

	n, err := f.r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}

	resp.Data = buf[:n]
	return nil
}
