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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/gifdec/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// ProgressBarState tracks frames written by an extraction.
type ProgressBarState struct {
	TotalFrames    int
	FramesWritten  int
	BytesWritten   int64
	StartTime      time.Time
	LastUpdateTime time.Time

	out io.Writer
}

func NewProgressBarState(out io.Writer, totalFrames int) *ProgressBarState {
	return &ProgressBarState{
		TotalFrames:    totalFrames,
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
		out:            out,
	}
}

// Add records a written frame of n bytes and redraws the bar when due.
func (pbs *ProgressBarState) Add(n int64) {
	pbs.FramesWritten++
	pbs.BytesWritten += n
	pbs.Render(pbs.FramesWritten == pbs.TotalFrames)
}

func (pbs *ProgressBarState) Render(force bool) {
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pbs.TotalFrames > 0 {
		percentage = float64(pbs.FramesWritten) / float64(pbs.TotalFrames) * 100
	}

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var rate float64
	if elapsed := time.Since(pbs.StartTime).Seconds(); elapsed > 0 {
		rate = float64(pbs.BytesWritten) / elapsed / (1024 * 1024)
	}

	pbs.LastUpdateTime = time.Now()

	// \r moves the cursor back so the line is redrawn in place.
	fmt.Fprintf(pbs.out, "\r[INFO] Progress: [%s] %3.0f%% | Frames: %d/%d | Written: %s | @ %.2fMB/s    ",
		bar,
		percentage,
		pbs.FramesWritten,
		pbs.TotalFrames,
		format.FormatBytes(pbs.BytesWritten),
		rate)
}

func (pbs *ProgressBarState) Finish() {
	fmt.Fprintln(pbs.out)
}
