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
	"crypto/rand"
	"fmt"
	"io"
	mrand "math/rand"
	"os"

	"github.com/pdfdig/pdfdig/internal/logger"
	osutils "github.com/pdfdig/pdfdig/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineBundleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <file1> <file2> ...",
		Short: "Bundle image files into a single synthetic container",
		Long: `The 'bundle' command concatenates image files into a single flat container file,
interleaved with random garbage gaps. This is useful for exercising the extractor
with known, reproducible data.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunBundle,
	}

	cmd.Flags().StringP("output", "o", "", "path of the output container file (required)")
	cmd.Flags().Int("min-gap", 4*1024, "minimum gap size in bytes between files")
	cmd.Flags().Int("max-gap", 512*1024, "maximum gap size in bytes between files")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func RunBundle(cmd *cobra.Command, args []string) error {
	filePaths := make([]string, 0, len(args))
	for _, arg := range args {
		paths, err := osutils.ListFiles(arg)
		if err != nil {
			return err
		}
		filePaths = append(filePaths, paths...)
	}

	out, _ := cmd.Flags().GetString("output")

	minGap, _ := cmd.Flags().GetInt("min-gap")
	maxGap, _ := cmd.Flags().GetInt("max-gap")

	if minGap <= 0 {
		return fmt.Errorf("min-gap must be greater than 0")
	}
	if minGap > maxGap {
		return fmt.Errorf("min-gap (%d) cannot be greater than max-gap (%d)", minGap, maxGap)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	log := logger.New(os.Stdout, logger.InfoLevel)

	log.Infof("Bundling %d files into %s", len(filePaths), out)

	w := bufio.NewWriter(f)

	bytesWritten := int64(0)
	for _, path := range filePaths {
		gapSize := minGap + mrand.Intn(maxGap-minGap+1)

		if _, err := io.CopyN(w, rand.Reader, int64(gapSize)); err != nil {
			return err
		}
		bytesWritten += int64(gapSize)

		nCopied, err := osutils.CopyFile(w, path)
		if err != nil {
			return err
		}
		bytesWritten += nCopied
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("error flushing writer: %w", err)
	}

	log.Infof("Bundling successfully completed. %d bytes written.", bytesWritten)
	return nil
}
