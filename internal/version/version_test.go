package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVars(t *testing.T, version, commit, tag, dirty string) {
	t.Helper()
	saved := []string{Version, GitCommit, GitTag, GitDirty}
	savedRead := readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, GitTag, GitDirty = saved[0], saved[1], saved[2], saved[3]
		readBuildInfo = savedRead
	})
	Version, GitCommit, GitTag, GitDirty = version, commit, tag, dirty
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name                        string
		version, commit, tag, dirty string
		want                        string
	}{
		{name: "defaults", version: "dev", commit: "unknown", tag: "unknown", want: "dev"},
		{name: "ldflags", version: "v1.2.3", commit: "unknown", tag: "unknown", want: "v1.2.3"},
		{name: "tag and commit", version: "dev", commit: "abcdef0123", tag: "v0.1.0", want: "v0.1.0-abcdef0"},
		{name: "tag carries commit", version: "dev", commit: "abcdef0", tag: "v0.1.0-abcdef0", want: "v0.1.0-abcdef0"},
		{name: "dirty tree", version: "dev", commit: "abc", tag: "v0.1.0", dirty: "dirty", want: "v0.1.0-abc-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVars(t, tt.version, tt.commit, tt.tag, tt.dirty)
			assert.Equal(t, tt.want, GetVersion())
		})
	}
}

func TestGetVersionFromBuildInfo(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown", "")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
	}
	assert.Equal(t, "v0.4.0", GetVersion())
}

func TestGetFullVersion(t *testing.T) {
	withVars(t, "v1.0.0", "deadbeef", "v1.0.0", "")
	assert.Equal(t, "v1.0.0 (commit: deadbeef)", GetFullVersion())

	withVars(t, "v1.0.0", "unknown", "unknown", "")
	assert.Equal(t, "v1.0.0", GetFullVersion())
}
