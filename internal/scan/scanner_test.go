package scan_test

import (
	"bytes"
	"testing"

	"github.com/pdfdig/pdfdig/internal/scan"
	"github.com/pdfdig/pdfdig/internal/sig"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	pngTrailer = []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}

	// header then immediate trailer, total length 6
	minimalJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0xFF, 0xD9}
)

func newScanner(t *testing.T, ext string) *scan.Scanner {
	t.Helper()

	formats, err := sig.ByExt(ext)
	require.NoError(t, err)
	return scan.NewScanner(formats[0])
}

// garbage returns n deterministic filler bytes kept below 0x40, so no
// signature can ever occur inside the filler.
func garbage(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7) % 0x40
	}
	return buf
}

func minimalPNG() []byte {
	return append(append([]byte{}, pngHeader...), pngTrailer...)
}

func TestScanEmptyBuffer(t *testing.T) {
	require.Empty(t, newScanner(t, "jpg").Scan(nil))
	require.Empty(t, newScanner(t, "jpg").Scan([]byte{}))
	require.Empty(t, newScanner(t, "png").Scan(nil))
}

func TestScanNoSignatures(t *testing.T) {
	buf := make([]byte, 10)

	require.Empty(t, newScanner(t, "jpg").Scan(buf))
	require.Empty(t, newScanner(t, "png").Scan(buf))
}

func TestScanBufferShorterThanSignature(t *testing.T) {
	require.Empty(t, newScanner(t, "jpg").Scan([]byte{0xFF, 0xD8, 0xFF}))
	require.Empty(t, newScanner(t, "png").Scan(pngHeader[:7]))
}

func TestScanMinimalJPEG(t *testing.T) {
	ranges := newScanner(t, "jpg").Scan(minimalJPEG)

	require.Equal(t, []scan.ImageRange{{Start: 0, End: 6}}, ranges)
}

func TestScanMinimalPNG(t *testing.T) {
	ranges := newScanner(t, "png").Scan(minimalPNG())

	require.Len(t, ranges, 1)
	require.Equal(t, scan.ImageRange{Start: 0, End: 16}, ranges[0])
}

func TestScanAdjacentJPEGs(t *testing.T) {
	buf := append(append([]byte{}, minimalJPEG...), minimalJPEG...)

	ranges := newScanner(t, "jpg").Scan(buf)
	require.Len(t, ranges, 2)
	require.Equal(t, scan.ImageRange{Start: 0, End: 6}, ranges[0])
	require.Equal(t, ranges[0].End, ranges[1].Start)
	require.Equal(t, scan.ImageRange{Start: 6, End: 12}, ranges[1])
}

func TestScanUnterminatedJPEG(t *testing.T) {
	buf := append(garbage(32), 0xFF, 0xD8, 0xFF, 0xE1)
	buf = append(buf, garbage(16)...)

	ranges := newScanner(t, "jpg").Scan(buf)
	require.Equal(t, []scan.ImageRange{{Start: 32, End: len(buf)}}, ranges)
}

func TestScanUnterminatedStopsOuterScan(t *testing.T) {
	// A second start signature after an unterminated one is never
	// reported: the first range extends to the end of the buffer.
	buf := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, garbage(8)...)
	buf = append(buf, 0xFF, 0xD8, 0xFF, 0xE5)
	buf = append(buf, garbage(8)...)

	ranges := newScanner(t, "jpg").Scan(buf)
	require.Equal(t, []scan.ImageRange{{Start: 0, End: len(buf)}}, ranges)
}

func TestScanStartInsideImageNotReported(t *testing.T) {
	// A nested start signature between a start and its terminator is
	// consumed by the enclosing range.
	buf := []byte{
		0xFF, 0xD8, 0xFF, 0xE0,
		0xFF, 0xD8, 0xFF, 0xE1,
		0xFF, 0xD9,
	}

	ranges := newScanner(t, "jpg").Scan(buf)
	require.Equal(t, []scan.ImageRange{{Start: 0, End: 10}}, ranges)
}

func TestScanRejectsNonApplicationMarker(t *testing.T) {
	// fourth byte outside E0..EF is not a JPEG start, even with a
	// trailer present later
	buf := append([]byte{0xFF, 0xD8, 0xFF, 0xF0}, garbage(8)...)
	buf = append(buf, 0xFF, 0xD9)

	require.Empty(t, newScanner(t, "jpg").Scan(buf))
}

func TestScanGapsBetweenImages(t *testing.T) {
	var buf []byte
	buf = append(buf, garbage(100)...)
	buf = append(buf, minimalJPEG...)
	buf = append(buf, garbage(50)...)
	buf = append(buf, 0xFF, 0xD8, 0xFF, 0xEE)
	buf = append(buf, garbage(25)...)
	buf = append(buf, 0xFF, 0xD9)

	ranges := newScanner(t, "jpg").Scan(buf)
	require.Len(t, ranges, 2)
	require.Equal(t, scan.ImageRange{Start: 100, End: 106}, ranges[0])
	require.Equal(t, scan.ImageRange{Start: 156, End: len(buf)}, ranges[1])
}

func TestScanPNGWithChunkData(t *testing.T) {
	var buf []byte
	buf = append(buf, garbage(10)...)
	buf = append(buf, pngHeader...)
	buf = append(buf, garbage(64)...) // stand-in for IHDR/IDAT chunks
	buf = append(buf, pngTrailer...)
	buf = append(buf, garbage(10)...)

	ranges := newScanner(t, "png").Scan(buf)
	require.Len(t, ranges, 1)
	require.Equal(t, scan.ImageRange{Start: 10, End: 10 + 8 + 64 + 8}, ranges[0])
}

func TestScanResultProperties(t *testing.T) {
	var buf []byte
	for i := 0; i < 5; i++ {
		buf = append(buf, garbage(i*13)...)
		buf = append(buf, minimalJPEG...)
	}
	buf = append(buf, garbage(40)...)

	sc := newScanner(t, "jpg")

	ranges := sc.Scan(buf)
	require.Len(t, ranges, 5)

	for i, r := range ranges {
		require.GreaterOrEqual(t, r.Start, 0)
		require.Less(t, r.Start, r.End)
		require.LessOrEqual(t, r.End, len(buf))

		if i > 0 {
			require.Greater(t, r.Start, ranges[i-1].Start)
			require.GreaterOrEqual(t, r.Start, ranges[i-1].End)
		}
	}

	// a scan is a pure function of its input
	require.Equal(t, ranges, sc.Scan(buf))
}

func TestExtractRoundTrip(t *testing.T) {
	var buf []byte
	buf = append(buf, garbage(20)...)
	buf = append(buf, minimalJPEG...)
	buf = append(buf, garbage(20)...)
	buf = append(buf, minimalPNG()...)
	buf = append(buf, garbage(20)...)
	buf = append(buf, 0xFF, 0xD8, 0xFF, 0xE9) // truncated jpeg tail

	jpegRanges := newScanner(t, "jpg").Scan(buf)
	require.Len(t, jpegRanges, 2)

	for _, r := range jpegRanges {
		img := scan.Extract(buf, r)
		require.True(t, bytes.HasPrefix(img, []byte{0xFF, 0xD8, 0xFF}))
		require.GreaterOrEqual(t, img[3], byte(0xE0))
		require.LessOrEqual(t, img[3], byte(0xEF))

		if r.End == len(buf) {
			continue // truncated, no terminator to check
		}
		require.True(t, bytes.HasSuffix(img, []byte{0xFF, 0xD9}))
	}

	pngRanges := newScanner(t, "png").Scan(buf)
	require.Len(t, pngRanges, 1)

	img := scan.Extract(buf, pngRanges[0])
	require.True(t, bytes.HasPrefix(img, pngHeader))
	require.True(t, bytes.HasSuffix(img, pngTrailer))
	require.Equal(t, minimalPNG(), img)
}

func TestExtractAllPreservesOrder(t *testing.T) {
	buf := append(append([]byte{}, minimalJPEG...), minimalJPEG...)

	ranges := newScanner(t, "jpg").Scan(buf)
	images := scan.ExtractAll(buf, ranges)

	require.Len(t, images, 2)
	for _, img := range images {
		require.Equal(t, minimalJPEG, img)
	}
}
