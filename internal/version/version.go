// Package version reports the build version of the binaries.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.1.0")
	GitCommit = "unknown" // Git commit hash
	GitTag    = "unknown" // Git tag
	GitDirty  = ""        // "dirty" if built from a modified tree
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, then the module version from the
// build info, then one derived from the git tag and commit, else "dev".
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	v := GitTag
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" && !strings.HasSuffix(v, commit) {
		v += "-" + commit
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// GetFullVersion returns the version with its commit, when known.
func GetFullVersion() string {
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", GetVersion(), GitCommit)
	}
	return GetVersion()
}
