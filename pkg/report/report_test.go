package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdfdig/pdfdig/internal/env"
	"github.com/pdfdig/pdfdig/pkg/report"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	w := report.NewWriter(&buf)

	err := w.WriteHeader(report.Header{
		Version: report.SchemaVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Path: "/tmp/doc.pdf",
			Size: 4096,
		},
	})
	require.NoError(t, err)

	images := []report.Image{
		{
			Filename: "doc-pdf-images/doc-image-1.jpg",
			Source:   "/tmp/doc.pdf",
			Format:   "jpg",
			Size:     6,
			Runs: report.ByteRuns{
				Runs: []report.ByteRun{{Offset: 32, Length: 6}},
			},
		},
		{
			Filename: "doc-pdf-images/doc-image-1.png",
			Source:   "/tmp/doc.pdf",
			Format:   "png",
			Size:     16,
			Runs: report.ByteRuns{
				Runs: []report.ByteRun{{Offset: 70, Length: 16}},
			},
		},
	}
	for _, img := range images {
		require.NoError(t, w.WriteImage(img))
	}
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<extraction version="1.0">`)
	require.Contains(t, out, "</extraction>")

	parsed, err := report.ReadImages(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	for i, img := range parsed {
		require.Equal(t, images[i].Filename, img.Filename)
		require.Equal(t, images[i].Source, img.Source)
		require.Equal(t, images[i].Format, img.Format)
		require.Equal(t, images[i].Size, img.Size)
		require.Equal(t, images[i].Runs.Runs, img.Runs.Runs)
	}
}

func TestReadImagesEmptyReport(t *testing.T) {
	var buf bytes.Buffer

	w := report.NewWriter(&buf)
	err := w.WriteHeader(report.Header{Version: report.SchemaVersion})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	images, err := report.ReadImages(&buf)
	require.NoError(t, err)
	require.Empty(t, images)
}
