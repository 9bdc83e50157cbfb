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
	"github.com/ostafen/gifdec/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - GIF decoding and frame extraction tool",
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("ignore-metadata", false, "do not record comment extensions")
	flags.String("encoding", "ISO-8859-1", "IANA name of the text encoding of comments (e.g. UTF-8, UTF-16LE)")
	flags.Bool("strict", false, "reject short image data and frames outside the canvas")
	flags.Int("max-pixels", 0, "maximum number of pixels of the canvas and of each frame (0 = default)")
	flags.String("max-size", "256MB", "maximum size of the input file")
	flags.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineInfoCommand(),
		DefineExtractCommand(),
		DefineMountCommand(),
	)
	return rootCmd
}
