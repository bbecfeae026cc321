// Package version provides information about the build version of the tool.
package version

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String renders a one line summary for -version
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}

// Info returns the build information. The version, commit, and date variables
// are set at build time using -ldflags; otherwise vcs stamps from the Go build are used.
func Info() BuildInfo {
	// -ldflags "-X 'stratsampler/internal/core/version.version=v0.1.0'
	// -X 'stratsampler/internal/core/version.commit=abcd' -X 'stratsampler/internal/core/version.date=2026-10-18'"
	bi := BuildInfo{
		Service: "stratsampler",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := readBuildInfo(); ok {
		fillFromBuild(&bi, info)
	}
	return bi
}

var readBuildInfo = debug.ReadBuildInfo

// fillFromBuild only replaces values still at their placeholder
func fillFromBuild(bi *BuildInfo, info *debug.BuildInfo) {
	if bi.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "none" && s.Value != "" {
				bi.Commit = s.Value
				if len(bi.Commit) > 12 {
					bi.Commit = bi.Commit[:12]
				}
			}
		case "vcs.time":
			if bi.Date == "unknown" && s.Value != "" {
				bi.Date = s.Value
			}
		}
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
