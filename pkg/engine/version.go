package engine

import "runtime"

// Version is the release of the anagopos engine.
const Version = "0.1.0"

// Build metadata, set with -ldflags "-X github.com/gitrdm/anagopos/pkg/engine.GitCommit=...".
var (
	GitCommit string
	BuildDate string
)

// VersionInfo provides detailed version information.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}
