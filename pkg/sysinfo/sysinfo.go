package sysinfo

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// SysUnknown is the fallback when no platform details can be gathered.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
}

// SysInfo holds the basic operating system details.
type SysInfo struct {
	Name    string
	Release string
	Version string
}

// Stat gathers operating system name, release and version using
// platform-specific sources.
func Stat() (*SysInfo, error) {
	var release, version string

	switch runtime.GOOS {
	case "linux":
		release, version = linuxInfo()
	case "darwin":
		release, version = darwinInfo()
	case "windows":
		release, version = windowsInfo()
	default:
		release, version = "unknown", "unknown"
	}

	return &SysInfo{
		Name:    runtime.GOOS,
		Release: release,
		Version: version,
	}, nil
}

// linuxInfo parses /etc/os-release.
func linuxInfo() (string, string) {
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return "unknown", "unknown"
	}
	defer f.Close()

	var name, version string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "NAME="); ok {
			name = strings.Trim(v, `"`)
		}
		if v, ok := strings.CutPrefix(line, "VERSION="); ok {
			version = strings.Trim(v, `"`)
		}
	}
	return name, version
}

// darwinInfo parses the output of sw_vers.
func darwinInfo() (string, string) {
	output, err := exec.Command("sw_vers").Output()
	if err != nil {
		return "macOS", "unknown"
	}

	var productName, productVersion string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "ProductName:"); ok {
			productName = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "ProductVersion:"); ok {
			productVersion = strings.TrimSpace(v)
		}
	}
	return productName, productVersion
}

func windowsInfo() (string, string) {
	output, err := exec.Command("cmd", "/c", "ver").Output()
	if err != nil {
		return "Windows", "unknown"
	}
	return "Windows", strings.TrimSpace(string(output))
}
