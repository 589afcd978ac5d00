package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	// Version is the semantic version, injected at build time via -ldflags
	Version = "dev"
	// GitCommit is the git commit hash, injected at build time
	GitCommit = "unknown"
	// BuildDate is the build timestamp, injected at build time
	BuildDate = "unknown"
	// GoVersion is the Go compiler version
	GoVersion = runtime.Version()
	// Platform is the OS/Arch
	Platform = runtime.GOOS + "/" + runtime.GOARCH
)

// BuildInfo contains metadata about the build
type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string    `json:"buildDate" yaml:"buildDate"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	Platform  string    `json:"platform" yaml:"platform"`
	BuildTime time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
	// YAML reports whether this binary can read YAML config files.
	YAML bool `json:"yaml" yaml:"yaml"`
}

// GetBuildInfo returns build metadata. yamlSupported is passed in by the
// caller so this package stays free of other exmailer imports.
func GetBuildInfo(yamlSupported bool) BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
		YAML:      yamlSupported,
	}

	if t, err := time.Parse(time.RFC3339, BuildDate); err == nil {
		info.BuildTime = t
	}

	return info
}

// String formats info as a single line.
func (i BuildInfo) String() string {
	return fmt.Sprintf("exmailer %s (commit: %s, built: %s, %s)", i.Version, i.GitCommit, i.BuildDate, i.Platform)
}
