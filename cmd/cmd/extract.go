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
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/gifdec/internal/extract"
	"github.com/spf13/cobra"
)

func DefineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.gif>",
		Short: "Extract every composited frame of a GIF file",
		Long: `The 'extract' command decodes a GIF file and writes each fully composited frame
as raw RGBA pixels (4 bytes per pixel, row-major, canvas sized) to the output directory,
together with an XML report describing the file and its frames.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtract,
	}

	cmd.Flags().StringP("output-dir", "o", "", "directory where frames are written. Defaults to <name>-frames in the working directory")
	cmd.Flags().StringP("report", "r", "", "path of the report file. Defaults to report.xml in the output directory")
	cmd.Flags().Bool("no-log", false, "disable the decode log file")
	cmd.Flags().Bool("no-progress", false, "do not show the progress bar")
	return cmd
}

func RunExtract(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		wdir, err := os.Getwd()
		if err != nil {
			return err
		}

		base := filepath.Base(args[0])
		name := strings.TrimSuffix(base, filepath.Ext(base))
		outDir = filepath.Join(wdir, name+"-frames")
	}

	reportFile, _ := cmd.Flags().GetString("report")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	extractOpts := extract.Options{
		OutDir:      outDir,
		ReportFile:  reportFile,
		MaxFileSize: opts.MaxSize,
		DisableLog:  disableLog,
		LogLevel:    opts.LogLevel,
		Decode:      opts.Decode,
		Console:     opts.Console,
	}
	if !noProgress {
		extractOpts.Progress = cmd.ErrOrStderr()
	}
	return extract.Extract(args[0], extractOpts)
}
