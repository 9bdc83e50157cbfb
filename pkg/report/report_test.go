package report_test

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/ostafen/gifdec/pkg/gif"
	"github.com/ostafen/gifdec/pkg/report"
	"github.com/stretchr/testify/require"
)

func testImage() *gif.Image {
	canvas := image.Rect(0, 0, 4, 3)
	return &gif.Image{
		Header: gif.Header{
			Version: "GIF89a",
			Screen: gif.LogicalScreenDescriptor{
				Width:                4,
				Height:               3,
				HasGlobalColorTable:  true,
				GlobalColorTableSize: 16,
			},
		},
		Frames: []gif.Frame{
			{Image: image.NewNRGBA(canvas), Bounds: canvas, DelayTime: 10},
			{
				Image:      image.NewNRGBA(canvas),
				Bounds:     image.Rect(1, 1, 3, 2),
				Disposal:   gif.DisposalRestorePrevious,
				Interlaced: true,
			},
		},
		Properties: []gif.Property{{Name: gif.CommentsProperty, Value: "a < b & c"}},
		LoopCount:  0,
	}
}

func writeReport(t *testing.T, img *gif.Image) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := report.NewWriter(&buf)

	err := w.WriteHeader(report.Header{
		XmlOutput: report.XmlOutputVersion,
		Metadata:  report.DefaultMetadata,
		Creator: report.Creator{
			Package:              "gifdec",
			Version:              "test",
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.NewSource("anim.gif", 1234, img),
	})
	require.NoError(t, err)

	for i := range img.Frames {
		require.NoError(t, w.WriteFrame(report.NewFrameObject(i, &img.Frames[i])))
	}
	for _, p := range img.Properties {
		require.NoError(t, w.WriteProperty(report.Property{Name: p.Name, Value: p.Value}))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestWriteRead(t *testing.T) {
	data := writeReport(t, testImage())
	require.True(t, strings.HasPrefix(string(data), "<?xml"))

	rep, err := report.Read(bytes.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, report.XmlOutputVersion, rep.XmlOutput)
	require.Equal(t, "gifdec", rep.Creator.Package)
	require.Equal(t, report.Source{
		ImageFilename:    "anim.gif",
		ImageSize:        1234,
		Version:          "GIF89a",
		Width:            4,
		Height:           3,
		GlobalColorTable: 16,
		LoopCount:        0,
		Frames:           2,
	}, rep.Source)

	require.Len(t, rep.Frames, 2)
	f := rep.Frames[1]
	require.Equal(t, 1, f.Index)
	require.Equal(t, "frame_001.rgba", f.Filename)
	require.Equal(t, uint64(4*3*4), f.FileSize)
	require.Equal(t, image.Rect(1, 1, 3, 2), f.Bounds.Rectangle())
	require.Equal(t, "restore-to-previous", f.Disposal)
	require.True(t, f.Interlaced)
	require.Equal(t, uint16(10), rep.Frames[0].Delay)

	require.Len(t, rep.Properties, 1)
	require.Equal(t, "Comments", rep.Properties[0].Name)
	require.Equal(t, "a < b & c", rep.Properties[0].Value)
}

func TestReadFrameObjects(t *testing.T) {
	frames, err := report.ReadFrameObjects(bytes.NewReader(writeReport(t, testImage())))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, "frame_000.rgba", frames[0].Filename)
}

func TestReadInvalid(t *testing.T) {
	_, err := report.Read(strings.NewReader("<gifreport><frame>"))
	require.Error(t, err)
}

func TestGetExecEnv(t *testing.T) {
	env := report.GetExecEnv()
	require.NotEmpty(t, env.OS)
	require.NotEmpty(t, env.Arch)
	require.NotEmpty(t, env.Start)
}
