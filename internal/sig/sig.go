package sig

import (
	"fmt"
	"slices"
	"strings"
)

// Matcher constrains a single byte position within a signature.
// A matcher with Lo == Hi matches exactly one byte value; otherwise it
// matches any value in the inclusive range [Lo, Hi].
type Matcher struct {
	Lo byte
	Hi byte
}

// Byte returns a matcher for the exact byte value b.
func Byte(b byte) Matcher {
	return Matcher{Lo: b, Hi: b}
}

// Range returns a matcher for the inclusive byte range [lo, hi].
func Range(lo, hi byte) Matcher {
	return Matcher{Lo: lo, Hi: hi}
}

func (m Matcher) Matches(b byte) bool {
	return b >= m.Lo && b <= m.Hi
}

// Signature is a non-empty, ordered sequence of byte matchers identifying
// the start or the end of an embedded image.
type Signature []Matcher

// MatchAt reports whether buf contains the full signature starting at offset i.
func (s Signature) MatchAt(buf []byte, i int) bool {
	if i < 0 || i+len(s) > len(buf) {
		return false
	}
	for j, m := range s {
		if !m.Matches(buf[i+j]) {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	var b strings.Builder
	for _, m := range s {
		if m.Lo == m.Hi {
			fmt.Fprintf(&b, "%02x", m.Lo)
		} else {
			fmt.Fprintf(&b, "[%02x-%02x]", m.Lo, m.Hi)
		}
	}
	return b.String()
}

// Format describes one supported embedded image format. Start may contain
// range matchers; End is always an exact byte sequence, searched for as a
// contiguous match.
type Format struct {
	Ext         string // output file extension, e.g. "jpg"
	Description string
	Start       Signature
	End         []byte
}

// formats is the full signature table. Adding support for a new format
// means adding one entry here; the scanner is format-agnostic.
var formats = []Format{
	{
		Ext:         "jpg",
		Description: "JPEG image (JFIF/EXIF application segment)",
		Start:       Signature{Byte(0xFF), Byte(0xD8), Byte(0xFF), Range(0xE0, 0xEF)},
		End:         []byte{0xFF, 0xD9},
	},
	{
		Ext:         "png",
		Description: "Portable Network Graphics image",
		Start: Signature{
			Byte(0x89), Byte(0x50), Byte(0x4E), Byte(0x47),
			Byte(0x0D), Byte(0x0A), Byte(0x1A), Byte(0x0A),
		},
		End: []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82},
	},
}

// Formats returns the signature table entries for all supported formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// ByExt returns the table entries for the given extensions, in the order
// requested. With no arguments, the full table is returned.
func ByExt(exts ...string) ([]Format, error) {
	if len(exts) == 0 {
		return Formats(), nil
	}

	out := make([]Format, 0, len(exts))
	for _, ext := range exts {
		i := slices.IndexFunc(formats, func(f Format) bool {
			return f.Ext == ext
		})
		if i < 0 {
			return nil, fmt.Errorf("unsupported image format %q", ext)
		}
		out = append(out, formats[i])
	}
	return out, nil
}
