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
package extract

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ostafen/gifdec/internal/env"
	"github.com/ostafen/gifdec/internal/mmap"
	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/pbar"
	"github.com/ostafen/gifdec/pkg/report"
	fmtutil "github.com/ostafen/gifdec/pkg/util/format"
	osutils "github.com/ostafen/gifdec/pkg/util/os"
)

const ReportFileName = "report.xml"

type Options struct {
	OutDir      string
	ReportFile  string // defaults to OutDir/report.xml
	MaxFileSize uint64
	DisableLog  bool
	LogLevel    slog.Level
	Decode      gif.Config

	Console  *slog.Logger // user facing messages
	Progress io.Writer    // progress bar, nil disables it
}

// Load maps the file at path and decodes it. It returns the decoded image
// together with the input size.
func Load(path string, maxSize uint64, cfg gif.Config) (*gif.Image, int, error) {
	mf, err := mmap.NewMmapFile(path, int64(min(maxSize, uint64(1<<62))))
	if err != nil {
		return nil, 0, err
	}
	defer mf.Close()

	// Decoded frames, tables and properties never alias the input, so the
	// mapping can go away as soon as Decode returns.
	img, err := gif.Decode(mf.Data, cfg)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return img, mf.FileSize, nil
}

// WriteReport writes the report of a decoded image to w.
func WriteReport(w io.Writer, path string, size int, img *gif.Image) error {
	rw := report.NewWriter(w)

	err := rw.WriteHeader(report.Header{
		XmlOutput: report.XmlOutputVersion,
		Metadata:  report.DefaultMetadata,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.NewSource(path, size, img),
	})
	if err != nil {
		return err
	}

	for i := range img.Frames {
		if err := rw.WriteFrame(report.NewFrameObject(i, &img.Frames[i])); err != nil {
			return err
		}
	}
	for _, p := range img.Properties {
		if err := rw.WriteProperty(report.Property{Name: p.Name, Value: p.Value}); err != nil {
			return err
		}
	}
	return rw.Close()
}

// Extract decodes the GIF at filePath and writes every frame as raw NRGBA
// pixels to opts.OutDir, followed by the report.
func Extract(filePath string, opts Options) error {
	console := opts.Console
	if console == nil {
		console = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if _, err := osutils.EnsureDir(opts.OutDir, true); err != nil {
		return err
	}

	session := GenSessionID()

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = absPath(filepath.Join(opts.OutDir, session) + ".log")
	}

	logger, logFile, err := setupLogger(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := opts.Decode
	if cfg.Logger == nil {
		cfg.Logger = logger
	}

	console.Info("Starting extraction...")
	console.Info("Source", "path", absPath(filePath))
	console.Info("Destination", "path", absPath(opts.OutDir))

	start := time.Now()

	img, size, err := Load(filePath, opts.MaxFileSize, cfg)
	if err != nil {
		logger.Error("decode failed", "err", err)
		return err
	}

	console.Info("Decoded",
		"version", img.Version,
		"canvas", fmt.Sprintf("%dx%d", img.Screen.Width, img.Screen.Height),
		"frames", len(img.Frames),
	)

	var pbs *pbar.ProgressBarState
	if opts.Progress != nil {
		pbs = pbar.NewProgressBarState(opts.Progress, len(img.Frames))
	}

	var totalDataSize int64
	for i := range img.Frames {
		pix := img.Frames[i].Image.Pix

		name := report.FrameFilename(i)
		if err := dumpFile(opts.OutDir, name, pix); err != nil {
			return err
		}
		logger.Debug("frame written", "file", name, "bytes", len(pix))

		totalDataSize += int64(len(pix))
		if pbs != nil {
			pbs.Add(int64(len(pix)))
		}
	}
	if pbs != nil {
		pbs.Finish()
	}

	reportFileName := opts.ReportFile
	if reportFileName == "" {
		reportFileName = filepath.Join(opts.OutDir, ReportFileName)
	}

	outFile, err := os.Create(reportFileName)
	if err != nil {
		return err
	}
	defer outFile.Close()

	w := bufio.NewWriter(outFile)
	if err := WriteReport(w, filePath, size, img); err != nil {
		return fmt.Errorf("failed to write report %q: %w", reportFileName, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	console.Info("Extraction completed!")
	console.Info("Frames written", "count", len(img.Frames))
	console.Info("Total data", "size", fmtutil.FormatBytes(totalDataSize))
	console.Info("Duration", "elapsed", FormatDurationHMS(time.Since(start)))
	console.Info("Report saved", "path", absPath(reportFileName))

	if !opts.DisableLog {
		console.Info("Detailed decode log", "path", logFilePath)
	}
	return nil
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func dumpFile(dir string, fileName string, data []byte) error {
	f, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", fileName, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1024*1024) // 1MB buffer

	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

// GenSessionID returns the current time as YYYYMMDD_HHMMSS.
func GenSessionID() string {
	return time.Now().Format("20060102_150405")
}

func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger initializes a new slog.Logger that writes to a specified file or discards output.
func setupLogger(logFilePath string, minLevel slog.Level) (*slog.Logger, *os.File, error) {
	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
		}

		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: true,
	})
	return slog.New(handler), file, nil
}
