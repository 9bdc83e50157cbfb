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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ostafen/gifdec/internal/extract"
	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.gif>",
		Short: "Print the structure of a GIF file",
		Long: `The 'info' command decodes a GIF file and prints its version, canvas size and loop count,
followed by a table of frames and the textual metadata found in the file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInfo,
	}
	cmd.Flags().Bool("applications", false, "also list application extensions")
	return cmd
}

func RunInfo(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	var apps []gif.ApplicationExtension
	if listApps, _ := cmd.Flags().GetBool("applications"); listApps {
		opts.Decode.OnApplication = func(ext gif.ApplicationExtension) {
			apps = append(apps, ext)
		}
	}
	opts.Decode.Logger = opts.Console

	img, size, err := extract.Load(args[0], opts.MaxSize, opts.Decode)
	if err != nil {
		return err
	}
	return printInfo(cmd.OutOrStdout(), img, size, apps)
}

func printInfo(out io.Writer, img *gif.Image, size int, apps []gif.ApplicationExtension) error {
	fmt.Fprintf(out, "Version:\t%s\n", img.Version)
	fmt.Fprintf(out, "Size:\t\t%s\n", format.FormatBytes(int64(size)))
	fmt.Fprintf(out, "Canvas:\t\t%dx%d\n", img.Screen.Width, img.Screen.Height)
	fmt.Fprintf(out, "Colors:\t\t%d\n", img.Screen.GlobalColorTableSize)
	if img.LoopCount >= 0 {
		fmt.Fprintf(out, "Loop count:\t%d\n", img.LoopCount)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tBOUNDS\tDELAY\tDISPOSAL\tINTERLACED")
	for i, f := range img.Frames {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
			i,
			f.Bounds,
			f.Delay(),
			f.Disposal,
			f.Interlaced,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(img.Properties) > 0 {
		fmt.Fprintln(out)
		for _, p := range img.Properties {
			fmt.Fprintf(out, "%s: %q\n", p.Name, p.Value)
		}
	}

	if len(apps) > 0 {
		fmt.Fprintln(out)
		for _, ext := range apps {
			fmt.Fprintf(out, "Application: %s%s (%d sub-blocks)\n", ext.Identifier, ext.AuthCode, len(ext.SubBlocks))
		}
	}
	return nil
}
