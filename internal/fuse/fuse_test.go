//go:build linux

package fuse

import (
	"context"
	"os"
	"testing"

	"bazil.org/fuse"
	"github.com/stretchr/testify/require"
)

func testFS() *FramesFS {
	return NewFramesFS([]FileEntry{
		NewFileEntry("frame_001.rgba", []byte{5, 6, 7, 8}),
		NewFileEntry("frame_000.rgba", []byte{1, 2, 3, 4}),
		NewFileEntry("report.xml", []byte("<gifreport/>")),
	})
}

func TestDirReadDirAll(t *testing.T) {
	root, err := testFS().Root()
	require.NoError(t, err)

	dir := root.(*Dir)

	var attr fuse.Attr
	require.NoError(t, dir.Attr(context.Background(), &attr))
	require.True(t, attr.Mode.IsDir())

	ents, err := dir.ReadDirAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ents, 3)
	require.Equal(t, "frame_000.rgba", ents[0].Name)
	require.Equal(t, "frame_001.rgba", ents[1].Name)
	require.Equal(t, "report.xml", ents[2].Name)
	require.Equal(t, fuse.DT_File, ents[2].Type)
}

func TestFileRead(t *testing.T) {
	root, err := testFS().Root()
	require.NoError(t, err)

	node, err := root.(*Dir).Lookup(context.Background(), "frame_001.rgba")
	require.NoError(t, err)
	f := node.(File)

	var attr fuse.Attr
	require.NoError(t, f.Attr(context.Background(), &attr))
	require.Equal(t, uint64(4), attr.Size)
	require.Equal(t, os.FileMode(0444), attr.Mode)

	read := func(off int64, size int) []byte {
		var resp fuse.ReadResponse
		err := f.Read(context.Background(), &fuse.ReadRequest{Offset: off, Size: size}, &resp)
		require.NoError(t, err)
		return resp.Data
	}

	require.Equal(t, []byte{5, 6, 7, 8}, read(0, 4096))
	require.Equal(t, []byte{7}, read(2, 1))
	require.Equal(t, []byte{8}, read(3, 10))
	require.Empty(t, read(4, 10))

	_, err = root.(*Dir).Lookup(context.Background(), "missing")
	require.Equal(t, fuse.ENOENT, err)
}
