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

	"github.com/pdfdig/pdfdig/internal/logger"
	"github.com/pdfdig/pdfdig/internal/mmap"
	"github.com/pdfdig/pdfdig/pkg/report"
	osutils "github.com/pdfdig/pdfdig/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover <pdf_file> <report_file>",
		Short: "Re-extract images from a PDF using an extraction report",
		Long: `The 'recover' command extracts images from a PDF file based on the byte runs
recorded in a previously written extraction report, without scanning the file again.
Recovered images are saved to the output directory.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunRecover,
	}

	cmd.Flags().StringP("output-dir", "i", "", "directory where recovered images will be placed")
	return cmd
}

func RunRecover(cmd *cobra.Command, args []string) error {
	f, err := mmap.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reportFile, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer reportFile.Close()

	images, err := report.ReadImages(bufio.NewReader(reportFile))
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		base := filepath.Base(reportFile.Name())
		name := strings.TrimSuffix(base, filepath.Ext(base))
		outDir = name + "-dump"
	}

	if _, err := osutils.EnsureDir(outDir, true); err != nil {
		return err
	}

	log := logger.New(os.Stdout, logger.InfoLevel)

	for _, img := range images {
		if len(img.Runs.Runs) < 1 {
			return fmt.Errorf("invalid report file: image %q has no byte runs", img.Filename)
		}
		run := img.Runs.Runs[0]

		if run.Offset+run.Length > uint64(len(f.Data)) {
			log.Errorf("byte run of %s exceeds the file size, skipping", img.Filename)
			continue
		}

		name := filepath.Base(img.Filename)
		outPath := filepath.Join(outDir, name)

		log.Infof("recovering image %s", outPath)

		data := f.Data[run.Offset : run.Offset+run.Length]
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			log.Errorf("unable to recover image %s: %s", name, err)
		}
	}
	return nil
}
