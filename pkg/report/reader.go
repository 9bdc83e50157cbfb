package report

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Read parses a report produced by Writer.
func Read(r io.Reader) (*Report, error) {
	var rep Report
	if err := xml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("invalid report file: %w", err)
	}
	return &rep, nil
}

// ReadFrameObjects returns the frame elements of a report, skipping
// everything else.
func ReadFrameObjects(r io.Reader) ([]FrameObject, error) {
	dec := xml.NewDecoder(r)
	var frames []FrameObject

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if startElem, ok := tok.(xml.StartElement); ok && startElem.Name.Local == "frame" {
			var fo FrameObject
			if err := dec.DecodeElement(&fo, &startElem); err != nil {
				return nil, err
			}
			frames = append(frames, fo)
		}
	}
	return frames, nil
}
