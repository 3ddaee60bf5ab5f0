package report

import (
	"encoding/xml"
	"io"
)

// ReadImages parses and returns all <image> elements from the reader.
func ReadImages(r io.Reader) ([]Image, error) {
	dec := xml.NewDecoder(r)
	var images []Image

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		if startElem, ok := tok.(xml.StartElement); ok && startElem.Name.Local == "image" {
			var img Image
			if err := dec.DecodeElement(&img, &startElem); err != nil {
				return nil, err
			}
			images = append(images, img)
		}
	}
	return images, nil
}
