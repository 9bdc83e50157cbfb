package report

import (
	"encoding/xml"
	"io"
)

const rootElement = "gifreport"

// Writer streams a report: the header first, then frames and properties
// in any order, then Close.
type Writer struct {
	w   io.Writer    // The underlying writer (e.g., os.Stdout, a file).
	enc *xml.Encoder // The XML encoder used to write XML elements.
}

func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &Writer{
		w:   w,
		enc: enc,
	}
}

func (w *Writer) WriteHeader(hdr Header) error {
	if _, err := w.w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	// The opening tag is written by hand so that the header fields end up
	// inside a root element that stays open until Close.
	start := xml.StartElement{
		Name: xml.Name{Local: rootElement},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: hdr.XmlOutput},
		},
	}
	if err := w.enc.EncodeToken(start); err != nil {
		return err
	}

	if err := w.enc.EncodeElement(hdr.Metadata, xml.StartElement{Name: xml.Name{Local: "metadata"}}); err != nil {
		return err
	}
	if err := w.enc.EncodeElement(hdr.Creator, xml.StartElement{Name: xml.Name{Local: "creator"}}); err != nil {
		return err
	}
	return w.enc.EncodeElement(hdr.Source, xml.StartElement{Name: xml.Name{Local: "source"}})
}

func (w *Writer) WriteFrame(obj FrameObject) error {
	return w.enc.Encode(obj)
}

func (w *Writer) WriteProperty(p Property) error {
	return w.enc.Encode(p)
}

func (w *Writer) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: rootElement}}); err != nil {
		return err
	}
	return w.enc.Flush()
}
