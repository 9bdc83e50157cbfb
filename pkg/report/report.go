package report

import (
	"encoding/xml"
	"fmt"
	"image"

	"github.com/ostafen/gifdec/pkg/gif"
)

const XmlOutputVersion = "1.0"

var DefaultMetadata = Metadata{
	XmlnsXsi: "http://www.w3.org/2001/XMLSchema-instance",
	XmlnsDC:  "http://purl.org/dc/elements/1.1/",
	Type:     "Decode Report",
}

// Header is everything written before the first frame.
type Header struct {
	XmlOutput string   // The version of the report schema, written on the root element.
	Metadata  Metadata // Contains metadata about the document.
	Creator   Creator  // Describes the software that created the report.
	Source    Source   // Describes the decoded GIF.
}

// Report is a whole report document, as returned by Read.
type Report struct {
	XMLName    xml.Name      `xml:"gifreport"`
	XmlOutput  string        `xml:"xmloutputversion,attr"`
	Creator    Creator       `xml:"creator"`
	Source     Source        `xml:"source"`
	Frames     []FrameObject `xml:"frame"`
	Properties []Property    `xml:"property"`
}

type Metadata struct {
	XmlnsXsi string `xml:"xmlns:xsi,attr"` // XML Namespace for XML Schema Instance.
	XmlnsDC  string `xml:"xmlns:dc,attr"`  // XML Namespace for Dublin Core.
	Type     string `xml:"dc:type"`        // The type of the document.
}

type Creator struct {
	Package              string  `xml:"package"`               // The name of the software package.
	Version              string  `xml:"version"`               // The version of the software package.
	ExecutionEnvironment ExecEnv `xml:"execution_environment"` // Details about the execution environment.
}

type Source struct {
	ImageFilename    string `xml:"image_filename"`
	ImageSize        uint64 `xml:"image_size"` // Size of the input in bytes
	Version          string `xml:"gif_version"`
	Width            int    `xml:"width"`
	Height           int    `xml:"height"`
	GlobalColorTable int    `xml:"global_color_table"` // Number of entries, 0 when absent
	LoopCount        int    `xml:"loop_count"`
	Frames           int    `xml:"frames"`
}

// FrameObject describes one extracted frame.
type FrameObject struct {
	XMLName    xml.Name `xml:"frame"`
	Index      int      `xml:"index,attr"`
	Filename   string   `xml:"filename"`
	FileSize   uint64   `xml:"filesize"`
	Bounds     Rect     `xml:"bounds"`
	Delay      uint16   `xml:"delay"` // Hundredths of a second
	Disposal   string   `xml:"disposal"`
	Interlaced bool     `xml:"interlaced"`
	UserInput  bool     `xml:"user_input"`
}

// Rect is the area a frame covers on the canvas.
type Rect struct {
	X      int `xml:"x,attr"`
	Y      int `xml:"y,attr"`
	Width  int `xml:"width,attr"`
	Height int `xml:"height,attr"`
}

type Property struct {
	XMLName xml.Name `xml:"property"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:",chardata"`
}

// FrameFilename is the name under which frame i is extracted.
func FrameFilename(i int) string {
	return fmt.Sprintf("frame_%03d.rgba", i)
}

// NewSource summarizes a decoded image read from filename.
func NewSource(filename string, size int, img *gif.Image) Source {
	return Source{
		ImageFilename:    filename,
		ImageSize:        uint64(size),
		Version:          img.Version,
		Width:            img.Screen.Width,
		Height:           img.Screen.Height,
		GlobalColorTable: img.Screen.GlobalColorTableSize,
		LoopCount:        img.LoopCount,
		Frames:           len(img.Frames),
	}
}

// NewFrameObject describes frame i. The extracted file holds the raw
// canvas pixels.
func NewFrameObject(i int, f *gif.Frame) FrameObject {
	return FrameObject{
		Index:      i,
		Filename:   FrameFilename(i),
		FileSize:   uint64(len(f.Image.Pix)),
		Bounds:     NewRect(f.Bounds),
		Delay:      f.DelayTime,
		Disposal:   f.Disposal.String(),
		Interlaced: f.Interlaced,
		UserInput:  f.UserInput,
	}
}

func NewRect(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}
