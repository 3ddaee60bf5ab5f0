// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfdig/pdfdig/internal/fuse"
	"github.com/pdfdig/pdfdig/pkg/report"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <pdf_file> <report_file>",
		Short: "Mount the images of a PDF as a read-only filesystem",
		Long: `The 'mount' command exposes the images listed in an extraction report as a flat,
read-only directory, without writing them to disk. Image bytes are read on demand
from the PDF file. Linux only.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "directory where the filesystem will be mounted; derived from the report name if empty")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reportFile, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer reportFile.Close()

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(reportFile.Name())
	}

	images, err := report.ReadImages(bufio.NewReader(reportFile))
	if err != nil {
		return err
	}

	entries, err := imagesToEntries(images)
	if err != nil {
		return err
	}
	return fuse.Mount(mountpoint, f, entries)
}

// getMountpoint derives a mountpoint name from the report file name by
// stripping its extension.
func getMountpoint(reportFileName string) string {
	baseName := filepath.Base(reportFileName)
	ext := filepath.Ext(baseName)
	baseName = strings.TrimSuffix(baseName, ext)
	if ext == "" {
		baseName += "_mnt"
	}
	return baseName
}

func imagesToEntries(images []report.Image) ([]fuse.ImageEntry, error) {
	entries := make([]fuse.ImageEntry, len(images))
	for i, img := range images {
		runs := img.Runs.Runs
		if len(runs) < 1 {
			return nil, fmt.Errorf("invalid report file: image %q has no byte runs", img.Filename)
		}

		entries[i] = fuse.ImageEntry{
			Name:   filepath.Base(img.Filename),
			Offset: runs[0].Offset,
			Size:   runs[0].Length,
		}
	}
	return entries, nil
}
