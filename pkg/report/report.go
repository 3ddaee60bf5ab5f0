package report

import (
	"encoding/xml"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/pdfdig/pdfdig/pkg/sysinfo"
)

const SchemaVersion = "1.0"

// Header is the root element of an extraction report.
type Header struct {
	XMLName xml.Name `xml:"extraction"`
	Version string   `xml:"version,attr,omitempty"`
	Creator Creator  `xml:"creator"`
	Source  Source   `xml:"source"`
}

// Creator describes the software and environment that produced the report.
type Creator struct {
	XMLName              xml.Name `xml:"creator"`
	Package              string   `xml:"package"`
	Version              string   `xml:"version"`
	ExecutionEnvironment ExecEnv  `xml:"execution_environment"`
}

// ExecEnv records the host the extraction ran on.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Source describes the scanned input: a single PDF file or a directory of
// candidate files.
type Source struct {
	XMLName xml.Name `xml:"source"`
	Path    string   `xml:"path"`
	Size    uint64   `xml:"size,omitempty"`
}

// Image describes one extracted image: where it was written and the byte
// run of the source file it was carved from.
type Image struct {
	XMLName  xml.Name `xml:"image"`
	Filename string   `xml:"filename"` // output path, relative to the results directory
	Source   string   `xml:"source"`   // the PDF file the image was found in
	Format   string   `xml:"format"`   // "jpg" or "png"
	Size     uint64   `xml:"size"`
	Runs     ByteRuns `xml:"byte_runs"`
}

// ByteRuns is a collection of ByteRun entries.
type ByteRuns struct {
	Runs []ByteRun `xml:"byte_run"`
}

// ByteRun is a contiguous extent of the source file.
type ByteRun struct {
	Offset uint64 `xml:"offset,attr"`
	Length uint64 `xml:"len,attr"`
}

// GetExecEnv gathers runtime information for the report creator block.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if currentUser, err := user.Current(); err == nil {
		if uidInt, parseErr := strconv.Atoi(currentUser.Uid); parseErr == nil {
			uid = uidInt
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
