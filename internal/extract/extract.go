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
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfdig/pdfdig/internal/env"
	"github.com/pdfdig/pdfdig/internal/logger"
	"github.com/pdfdig/pdfdig/internal/mmap"
	"github.com/pdfdig/pdfdig/internal/scan"
	"github.com/pdfdig/pdfdig/internal/sig"
	"github.com/pdfdig/pdfdig/pkg/pbar"
	"github.com/pdfdig/pdfdig/pkg/report"
	fmtutil "github.com/pdfdig/pdfdig/pkg/util/format"
)

const (
	DefaultResultsDir = "results"

	// PDFExt is the extension the loader requires, matched case-sensitively.
	PDFExt = ".pdf"
)

// ErrNotPDF is returned by the loader gate when an input file does not
// carry the .pdf extension.
var ErrNotPDF = errors.New("missing .pdf extension")

// Options controls a single extraction run.
type Options struct {
	ResultsDir string
	ReportFile string
	FileExt    []string
	DisableLog bool
	LogLevel   logger.Level
}

// Run processes a single PDF file or every regular file directly inside a
// directory. Files the loader declines are skipped; in directory mode a
// failure on one file never aborts the rest.
func Run(path string, opts Options) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("the provided path %q is neither a file nor a directory: %w", path, err)
	}

	formats, err := sig.ByExt(opts.FileExt...)
	if err != nil {
		return err
	}

	resultsDir := opts.ResultsDir
	if resultsDir == "" {
		resultsDir = DefaultResultsDir
	}
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory %q: %w", resultsDir, err)
	}

	session := GenSessionID()

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = absPath(filepath.Join(resultsDir, session+".log"))
	}

	log, logFile, err := setupLogger(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	reportPath := opts.ReportFile
	if reportPath == "" {
		reportPath = filepath.Join(resultsDir, fmt.Sprintf("report_%s.xml", session))
	}
	reportFile, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", reportPath, err)
	}
	defer reportFile.Close()

	rw := report.NewWriter(reportFile)
	defer rw.Close()

	var srcSize uint64
	if !fi.IsDir() {
		srcSize = uint64(fi.Size())
	}
	err = rw.WriteHeader(report.Header{
		Version: report.SchemaVersion,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			Path: absPath(path),
			Size: srcSize,
		},
	})
	if err != nil {
		return err
	}

	exts := make([]string, len(formats))
	for i := range formats {
		exts[i] = formats[i].Ext
	}

	fmt.Println("[INFO] Starting extraction...")
	fmt.Printf("[INFO] Source: \t%s\n", absPath(path))
	fmt.Printf("[INFO] Image Types: \t%s\n", strings.Join(exts, ","))
	fmt.Printf("[INFO] Destination: \t%s\n", absPath(resultsDir))

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = logFilePath
	}
	fmt.Printf("[INFO] Output Log: \t%s\n", outLog)

	ex := &Extractor{
		formats:    formats,
		resultsDir: resultsDir,
		log:        log,
		report:     rw,
	}

	start := time.Now()

	if fi.IsDir() {
		err = ex.processDir(path)
	} else {
		err = ex.processFile(path)
		if errors.Is(err, ErrNotPDF) {
			fmt.Printf("[WARN] Skipping %s: %s\n", path, err)
			err = nil
		}
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("[INFO] Extraction completed!\n")
	fmt.Printf("[INFO] Files scanned: \t%d\n", ex.FilesScanned)
	fmt.Printf("[INFO] Images found: \t%d\n", ex.ImagesFound)
	fmt.Printf("[INFO] Total data: \t%s\n", fmtutil.FormatBytes(int64(ex.BytesExtracted)))
	fmt.Printf("[INFO] Duration: \t%s\n", FormatDurationHMS(time.Since(start)))
	fmt.Printf("[INFO] Report saved to: \t%s\n", absPath(reportPath))
	return nil
}

// Extractor accumulates per-run state: the formats to scan for, the output
// locations and the running totals reported in the final summary.
type Extractor struct {
	formats    []sig.Format
	resultsDir string
	log        *logger.Logger
	report     *report.Writer
	pb         *pbar.ProgressBarState

	FilesScanned   int
	ImagesFound    int
	BytesExtracted uint64
}

// processDir attempts every regular file directly inside dir. Declined
// files are skipped silently; failures are logged and do not stop the batch.
func (e *Extractor) processDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var totalBytes int64
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if info, err := entry.Info(); err == nil {
			totalBytes += info.Size()
		}
	}

	e.pb = pbar.NewProgressBarState(totalBytes)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		err := e.processFile(path)
		if errors.Is(err, ErrNotPDF) {
			e.log.Debugf("skipping %s: %s", path, err)
		} else if err != nil {
			fmt.Printf("[WARN] %s: %s\n", path, err)
			e.log.Errorf("failed to process %s: %s", path, err)
		}

		if info, err := entry.Info(); err == nil {
			e.pb.ProcessedBytes += info.Size()
		}
		e.pb.ImagesFound = e.ImagesFound
		e.pb.Render(false)
	}

	e.pb.Render(true)
	e.pb.Finish()
	return nil
}

// processFile scans one PDF file with every selected format and writes the
// extracted images under <results>/<base>-pdf-images/.
func (e *Extractor) processFile(path string) error {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, PDFExt) {
		return ErrNotPDF
	}
	base = strings.TrimSuffix(base, PDFExt)

	f, err := mmap.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	e.FilesScanned++
	e.log.Infof("scanning %s (%s)", path, fmtutil.FormatBytes(int64(len(f.Data))))

	outDir := filepath.Join(e.resultsDir, base+"-pdf-images")

	for _, format := range e.formats {
		ranges := scan.NewScanner(format).Scan(f.Data)
		if len(ranges) == 0 {
			fmt.Printf("[INFO] No %s signature found in file %s\n", format.Ext, path)
			continue
		}

		fmt.Printf("[INFO] Saving %d %s images from %s...\n", len(ranges), format.Ext, path)

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", outDir, err)
		}

		for i, r := range ranges {
			name := fmt.Sprintf("%s-image-%d.%s", base, i+1, format.Ext)
			outPath := filepath.Join(outDir, name)

			if err := os.WriteFile(outPath, scan.Extract(f.Data, r), 0644); err != nil {
				return fmt.Errorf("failed to write image %q: %w", name, err)
			}

			e.log.Infof("image saved to %s (offset=%d size=%d)", outPath, r.Start, r.Len())
			e.ImagesFound++
			e.BytesExtracted += uint64(r.Len())

			err := e.report.WriteImage(report.Image{
				Filename: filepath.Join(base+"-pdf-images", name),
				Source:   absPath(path),
				Format:   format.Ext,
				Size:     uint64(r.Len()),
				Runs: report.ByteRuns{
					Runs: []report.ByteRun{{
						Offset: uint64(r.Start),
						Length: uint64(r.Len()),
					}},
				},
			})
			if err != nil {
				e.log.Errorf("unable to write report entry for %s: %s", name, err)
			}
		}
	}
	return nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GenSessionID creates a unique name for an extraction session, in the
// form "YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a duration as HH:MM:SS, or fractional seconds
// for sub-second runs.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger returns a logger writing to logFilePath, or one that discards
// everything when the path is empty. The returned *os.File, if not nil,
// must be closed by the caller.
func setupLogger(logFilePath string, minLevel logger.Level) (*logger.Logger, *os.File, error) {
	var writer io.Writer = io.Discard
	var file *os.File

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	return logger.New(writer, minLevel), file, nil
}
