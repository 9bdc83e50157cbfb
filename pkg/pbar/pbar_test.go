package pbar_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ostafen/gifdec/pkg/pbar"
	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer

	pbs := pbar.NewProgressBarState(&buf, 2)
	pbs.Add(1024)
	require.Contains(t, buf.String(), "Frames: 1/2")
	require.Contains(t, buf.String(), "[==========>         ]")

	pbs.Add(1024)
	pbs.Finish()

	out := buf.String()
	require.Contains(t, out, "Frames: 2/2")
	require.Contains(t, out, "Written: 2KB")
	require.Contains(t, out, "[====================] 100%")
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Equal(t, int64(2048), pbs.BytesWritten)
}
