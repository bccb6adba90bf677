package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"     // -X github.com/ctisourcing/intake-api/internal/version.Version=v1.0.0
	BuildTime = "unknown" // -X github.com/ctisourcing/intake-api/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)
	GitCommit = "unknown" // -X github.com/ctisourcing/intake-api/internal/version.GitCommit=$(git rev-parse HEAD)
)

// BuildInfo contains build information
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information for this binary
func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single-line rendering of the build info
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s, %s)",
		b.Version, b.GitCommit, b.BuildTime, b.GoVersion, b.Platform)
}
