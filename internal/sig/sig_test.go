package sig_test

import (
	"testing"

	"github.com/pdfdig/pdfdig/internal/sig"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	exact := sig.Byte(0xFF)
	require.True(t, exact.Matches(0xFF))
	require.False(t, exact.Matches(0xFE))

	rng := sig.Range(0xE0, 0xEF)
	require.True(t, rng.Matches(0xE0))
	require.True(t, rng.Matches(0xE7))
	require.True(t, rng.Matches(0xEF))
	require.False(t, rng.Matches(0xDF))
	require.False(t, rng.Matches(0xF0))
}

func TestSignatureMatchAt(t *testing.T) {
	s := sig.Signature{sig.Byte(0xFF), sig.Byte(0xD8), sig.Byte(0xFF), sig.Range(0xE0, 0xEF)}

	buf := []byte{0x00, 0xFF, 0xD8, 0xFF, 0xE1, 0x00}
	require.True(t, s.MatchAt(buf, 1))
	require.False(t, s.MatchAt(buf, 0))
	require.False(t, s.MatchAt(buf, 2))

	// out of bounds offsets never match
	require.False(t, s.MatchAt(buf, -1))
	require.False(t, s.MatchAt(buf, 3))
	require.False(t, s.MatchAt(buf, len(buf)))
	require.False(t, s.MatchAt(nil, 0))
}

func TestSignatureString(t *testing.T) {
	s := sig.Signature{sig.Byte(0xFF), sig.Byte(0xD8), sig.Byte(0xFF), sig.Range(0xE0, 0xEF)}
	require.Equal(t, "ffd8ff[e0-ef]", s.String())
}

func TestTableEntries(t *testing.T) {
	formats, err := sig.ByExt("jpg", "png")
	require.NoError(t, err)
	require.Len(t, formats, 2)

	jpeg, png := formats[0], formats[1]

	require.Equal(t, "jpg", jpeg.Ext)
	require.Equal(t, []byte{0xFF, 0xD9}, jpeg.End)
	require.True(t, jpeg.Start.MatchAt([]byte{0xFF, 0xD8, 0xFF, 0xE0}, 0))
	require.True(t, jpeg.Start.MatchAt([]byte{0xFF, 0xD8, 0xFF, 0xEF}, 0))
	require.False(t, jpeg.Start.MatchAt([]byte{0xFF, 0xD8, 0xFF, 0xF0}, 0))

	require.Equal(t, "png", png.Ext)
	require.True(t, png.Start.MatchAt([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, 0))
	require.Equal(t, []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}, png.End)
}

func TestByExt(t *testing.T) {
	all, err := sig.ByExt()
	require.NoError(t, err)
	require.Len(t, all, 2)

	jpegOnly, err := sig.ByExt("jpg")
	require.NoError(t, err)
	require.Len(t, jpegOnly, 1)
	require.Equal(t, "jpg", jpegOnly[0].Ext)

	_, err = sig.ByExt("gif")
	require.Error(t, err)
}
