// Package version reports build information for the nhd binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set with -ldflags "-X github.com/North-Head-Digital/nhd-website/pkg/version.Version=...".
// Commit and Date fall back to the VCS stamp go build embeds.
var (
	Version = "0.1.0"
	Commit  = unknown
	Date    = unknown
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get merges the link-time values with the embedded build settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown && s.Value != "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// ShortCommit trims a full revision hash to twelve characters.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 && i.Commit != unknown {
		return i.Commit[:12]
	}
	return i.Commit
}

// String renders the info on a single line for CLI output.
func (i Info) String() string {
	commit := i.ShortCommit()
	if i.Modified {
		commit += "-dirty"
	}
	return strings.Join([]string{
		fmt.Sprintf("nhd %s", i.Version),
		"commit " + commit,
		"built " + i.Date,
		i.GoVersion,
		i.Platform,
	}, ", ")
}
