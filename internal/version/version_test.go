package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		commit      string
		mainVersion string
		expected    string
	}{
		{
			name:     "development version without commit",
			version:  "development",
			commit:   "unknown",
			expected: "development",
		},
		{
			name:     "release version with commit",
			version:  "1.0.0",
			commit:   "abc1234",
			expected: "1.0.0+abc1234",
		},
		{
			name:        "development build uses module version",
			version:     "development",
			commit:      "unknown",
			mainVersion: "v0.3.1",
			expected:    "v0.3.1",
		},
		{
			name:        "devel module version is ignored",
			version:     "development",
			commit:      "def5678",
			mainVersion: "(devel)",
			expected:    "development+def5678",
		},
		{
			name:        "ldflags version wins over module version",
			version:     "2.0.0",
			commit:      "unknown",
			mainVersion: "v0.3.1",
			expected:    "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldCommit, oldRead := Version, Commit, readBuildInfo
			defer func() { Version, Commit, readBuildInfo = oldVersion, oldCommit, oldRead }()

			Version, Commit = tt.version, tt.commit
			readBuildInfo = func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{Main: debug.Module{Version: tt.mainVersion}}, true
			}

			assert.Equal(t, tt.expected, String())
		})
	}
}
