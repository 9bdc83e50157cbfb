package mmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/gifdec/internal/mmap"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.gif")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestNewMmapFile(t *testing.T) {
	data := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;")
	path := writeFile(t, data)

	mf, err := mmap.NewMmapFile(path, 0)
	require.NoError(t, err)
	require.Equal(t, data, mf.Data)
	require.Equal(t, len(data), mf.FileSize)

	require.NoError(t, mf.Close())
	require.Nil(t, mf.Data)
	require.Nil(t, mf.File)
}

func TestNewMmapFileLimits(t *testing.T) {
	path := writeFile(t, make([]byte, 100))

	_, err := mmap.NewMmapFile(path, 99)
	require.ErrorIs(t, err, mmap.ErrFileTooLarge)

	mf, err := mmap.NewMmapFile(path, 100)
	require.NoError(t, err)
	require.NoError(t, mf.Close())

	_, err = mmap.NewMmapFile(writeFile(t, nil), 0)
	require.Error(t, err)

	_, err = mmap.NewMmapFile(t.TempDir(), 0)
	require.Error(t, err)

	_, err = mmap.NewMmapFile(filepath.Join(t.TempDir(), "missing.gif"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
