package report

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type ExecEnv struct {
	OS      string `xml:"os_sysname"` // Operating system name (e.g., "linux", "windows").
	Release string `xml:"os_release"` // Operating system release name.
	Version string `xml:"os_version"` // Operating system version.
	Host    string `xml:"host"`       // Hostname of the machine.
	Arch    string `xml:"arch"`       // Architecture of the machine (e.g., "amd64").
	UID     int    `xml:"uid"`        // User ID under which the process ran.
	Start   string `xml:"start_time"` // Start time of the report generation.
}

func GetExecEnv() ExecEnv {
	release, version := osRelease()

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if u, err := user.Current(); err == nil {
		if n, err := strconv.Atoi(u.Uid); err == nil {
			uid = n
		}
	}

	return ExecEnv{
		OS:      runtime.GOOS,
		Release: release,
		Version: version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func osRelease() (string, string) {
	switch runtime.GOOS {
	case "linux":
		return linuxRelease()
	case "darwin":
		output, err := exec.Command("sw_vers").Output()
		if err != nil {
			return "macOS", "unknown"
		}
		fields := keyValues(output, ":")
		return fields["ProductName"], fields["ProductVersion"]
	case "windows":
		output, err := exec.Command("cmd", "/c", "ver").Output()
		if err != nil {
			return "Windows", "unknown"
		}
		return "Windows", strings.TrimSpace(string(output))
	}
	return "unknown", "unknown"
}

func linuxRelease() (string, string) {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "unknown", "unknown"
	}
	fields := keyValues(data, "=")
	return strings.Trim(fields["NAME"], `"`), strings.Trim(fields["VERSION"], `"`)
}

// keyValues parses "key<sep>value" lines.
func keyValues(data []byte, sep string) map[string]string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), sep)
		if ok {
			fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return fields
}
