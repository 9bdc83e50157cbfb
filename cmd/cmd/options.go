package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ostafen/gifdec/internal/logger"
	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/util/format"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

type Options struct {
	Decode   gif.Config
	MaxSize  uint64
	LogLevel slog.Level
	Console  *slog.Logger
}

func parseOptions(cmd *cobra.Command) (Options, error) {
	ignoreMetadata, _ := cmd.Flags().GetBool("ignore-metadata")
	strict, _ := cmd.Flags().GetBool("strict")
	maxPixels, _ := cmd.Flags().GetInt("max-pixels")
	encName, _ := cmd.Flags().GetString("encoding")
	logLevel, _ := cmd.Flags().GetString("log-level")

	enc, err := lookupEncoding(encName)
	if err != nil {
		return Options{}, err
	}

	maxSize, err := getBytes(cmd, "max-size")
	if err != nil {
		return Options{}, err
	}

	level := logger.ParseLevel(logLevel)
	return Options{
		Decode: gif.Config{
			IgnoreMetadata: ignoreMetadata,
			TextEncoding:   enc,
			MaxPixels:      maxPixels,
			Strict:         strict,
		},
		MaxSize:  maxSize,
		LogLevel: level,
		Console:  logger.New(os.Stderr, level),
	}, nil
}

// lookupEncoding resolves an IANA character set name.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return gif.DefaultTextEncoding, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	return v, nil
}
