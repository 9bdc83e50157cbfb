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
package cmd

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ostafen/gifdec/internal/extract"
	"github.com/ostafen/gifdec/internal/fuse"
	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/report"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <file.gif>",
		Short: "Mount the frames of a GIF file as a read-only filesystem",
		Long: `The 'mount' command decodes a GIF file and exposes each composited frame as a raw RGBA file,
along with the XML report, through a read-only FUSE filesystem. The filesystem stays mounted
until the process receives SIGINT or SIGTERM.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "Path to the directory where the filesystem will be mounted. If not specified, a default will be generated.")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}

	img, size, err := extract.Load(args[0], opts.MaxSize, opts.Decode)
	if err != nil {
		return err
	}

	entries, err := frameEntries(args[0], size, img)
	if err != nil {
		return err
	}
	return fuse.Mount(mountpoint, entries, opts.Console)
}

func getMountpoint(fileName string) string {
	baseName := filepath.Base(fileName)
	ext := filepath.Ext(baseName)
	return strings.TrimSuffix(baseName, ext) + "_mnt"
}

// frameEntries lists one file per frame plus the report.
func frameEntries(path string, size int, img *gif.Image) ([]fuse.FileEntry, error) {
	var buf bytes.Buffer
	if err := extract.WriteReport(&buf, path, size, img); err != nil {
		return nil, err
	}

	entries := make([]fuse.FileEntry, 0, len(img.Frames)+1)
	for i, f := range img.Frames {
		entries = append(entries, fuse.NewFileEntry(report.FrameFilename(i), f.Image.Pix))
	}
	return append(entries, fuse.NewFileEntry(extract.ReportFileName, buf.Bytes())), nil
}
