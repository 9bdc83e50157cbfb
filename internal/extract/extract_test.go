package extract_test

import (
	"bytes"
	"image"
	"image/color"
	stdgif "image/gif"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ostafen/gifdec/internal/extract"
	"github.com/ostafen/gifdec/internal/logger"
	"github.com/ostafen/gifdec/internal/mmap"
	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/report"
	"github.com/stretchr/testify/require"
)

func writeAnimation(t *testing.T, frames int) string {
	t.Helper()

	pal := color.Palette{color.Black, color.White, color.RGBA{0xFF, 0, 0, 0xFF}, color.RGBA{0, 0, 0xFF, 0xFF}}

	anim := &stdgif.GIF{}
	for k := 0; k < frames; k++ {
		p := image.NewPaletted(image.Rect(0, 0, 6, 4), pal)
		for i := range p.Pix {
			p.Pix[i] = uint8((i + k) % len(pal))
		}
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, 5)
	}

	var buf bytes.Buffer
	require.NoError(t, stdgif.EncodeAll(&buf, anim))

	path := filepath.Join(t.TempDir(), "anim.gif")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeAnimation(t, 2)

	img, size, err := extract.Load(path, 0, gif.Config{})
	require.NoError(t, err)
	require.Len(t, img.Frames, 2)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int(fi.Size()), size)

	_, _, err = extract.Load(path, 10, gif.Config{})
	require.ErrorIs(t, err, mmap.ErrFileTooLarge)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a\x01\x00"), 0644))

	_, _, err := extract.Load(path, 0, gif.Config{})
	require.ErrorIs(t, err, gif.ErrTruncatedInput)
}

func TestExtract(t *testing.T) {
	path := writeAnimation(t, 3)
	outDir := filepath.Join(t.TempDir(), "out")

	var console, progress bytes.Buffer
	err := extract.Extract(path, extract.Options{
		OutDir:   outDir,
		LogLevel: slog.LevelDebug,
		Console:  logger.New(&console, slog.LevelInfo),
		Progress: &progress,
	})
	require.NoError(t, err)

	img, _, err := extract.Load(path, 0, gif.Config{})
	require.NoError(t, err)

	for i, f := range img.Frames {
		data, err := os.ReadFile(filepath.Join(outDir, report.FrameFilename(i)))
		require.NoError(t, err)
		require.Equal(t, f.Image.Pix, data)
	}

	rf, err := os.Open(filepath.Join(outDir, extract.ReportFileName))
	require.NoError(t, err)
	defer rf.Close()

	rep, err := report.Read(rf)
	require.NoError(t, err)
	require.Equal(t, 3, rep.Source.Frames)
	require.Equal(t, 6, rep.Source.Width)
	require.Len(t, rep.Frames, 3)
	require.Equal(t, uint16(5), rep.Frames[2].Delay)

	logs, err := filepath.Glob(filepath.Join(outDir, "*.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	require.Contains(t, console.String(), "[INFO] Extraction completed!")
	require.Contains(t, progress.String(), "Frames: 3/3")
}

func TestExtractNonEmptyDir(t *testing.T) {
	path := writeAnimation(t, 1)
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "x"), nil, 0644))

	err := extract.Extract(path, extract.Options{OutDir: outDir, DisableLog: true})
	require.Error(t, err)
}

func TestFormatDurationHMS(t *testing.T) {
	require.Equal(t, "0.50s", extract.FormatDurationHMS(500*time.Millisecond))
	require.Equal(t, "01:02:03", extract.FormatDurationHMS(time.Hour+2*time.Minute+3*time.Second))
}
