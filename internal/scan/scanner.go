package scan

import (
	"bytes"

	"github.com/pdfdig/pdfdig/internal/sig"
)

// ImageRange is a [Start, End) byte interval of the scanned buffer believed
// to contain one complete embedded image. End is exclusive and points one
// past the last byte of the end signature. A range missing its terminator
// extends to the end of the buffer instead.
type ImageRange struct {
	Start int
	End   int
}

func (r ImageRange) Len() int {
	return r.End - r.Start
}

// Scanner finds embedded images of a single format inside a byte buffer.
// A Scanner is stateless between calls and never mutates or retains the
// buffers it is given; the same instance may be used from multiple
// goroutines.
type Scanner struct {
	format sig.Format
}

func NewScanner(f sig.Format) *Scanner {
	return &Scanner{format: f}
}

func (s *Scanner) Format() sig.Format {
	return s.format
}

// Scan walks buf once, left to right, and returns the ranges of all
// embedded images of the scanner's format, in buffer order.
//
// Each time the start signature matches at some offset, the first
// occurrence of the end signature from that offset onward closes the range,
// terminator included, and the cursor resumes one past the consumed range.
// A byte sequence can therefore never be claimed by two images, and images
// adjacent with zero gap are both found. If no end signature follows a
// start, the range extends to the end of the buffer and the scan stops.
//
// Buffers shorter than the start signature, including empty ones, yield an
// empty result. Scan never fails.
func (s *Scanner) Scan(buf []byte) []ImageRange {
	start := s.format.Start

	var ranges []ImageRange

	i := 0
	for i+len(start) <= len(buf) {
		// Every table entry opens with an exact byte, so candidate
		// positions can be located with an indexed search instead of
		// testing the full signature at every offset.
		if first := start[0]; first.Lo == first.Hi {
			j := bytes.IndexByte(buf[i:len(buf)-len(start)+1], first.Lo)
			if j < 0 {
				break
			}
			i += j
		}

		if !start.MatchAt(buf, i) {
			i++
			continue
		}

		end := len(buf)
		if e := bytes.Index(buf[i:], s.format.End); e >= 0 {
			end = i + e + len(s.format.End)
		}
		ranges = append(ranges, ImageRange{Start: i, End: end})

		i = end
	}
	return ranges
}

// Extract returns the bytes of r as a subslice of buf. The result aliases
// buf; callers that outlive the buffer must copy it.
func Extract(buf []byte, r ImageRange) []byte {
	return buf[r.Start:r.End]
}

// ExtractAll slices out every range, preserving scan order.
func ExtractAll(buf []byte, ranges []ImageRange) [][]byte {
	out := make([][]byte, len(ranges))
	for i, r := range ranges {
		out[i] = Extract(buf, r)
	}
	return out
}
