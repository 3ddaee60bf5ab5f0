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
	"github.com/pdfdig/pdfdig/internal/extract"
	"github.com/pdfdig/pdfdig/internal/logger"
	"github.com/spf13/cobra"
)

func DefineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file|directory>",
		Short: "Extract embedded JPEG and PNG images from PDF files",
		Long: `The 'extract' command scans the raw bytes of a PDF file for embedded image signatures
and saves every image found to the results directory.
If the argument is a directory, every regular file inside is attempted; files without
the .pdf extension are skipped.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtract,
	}

	cmd.Flags().StringP("results-dir", "o", extract.DefaultResultsDir, "directory where extracted images are placed")
	cmd.Flags().StringSlice("ext", nil, "image formats to extract (jpg, png)")
	cmd.Flags().String("report", "", "path of the extraction report file")
	cmd.Flags().Bool("no-log", false, "disable the per-session log file")
	cmd.Flags().String("log-level", "INFO", "minimum level for the session log")

	return cmd
}

func RunExtract(cmd *cobra.Command, args []string) error {
	resultsDir, _ := cmd.Flags().GetString("results-dir")
	reportFile, _ := cmd.Flags().GetString("report")
	fileExt, _ := cmd.Flags().GetStringSlice("ext")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	logLevel, _ := cmd.Flags().GetString("log-level")

	return extract.Run(args[0], extract.Options{
		ResultsDir: resultsDir,
		ReportFile: reportFile,
		FileExt:    fileExt,
		DisableLog: disableLog,
		LogLevel:   logger.ParseLevel(logLevel),
	})
}
