package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBranch, origBuildTime := Version, GitCommit, GitBranch, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		GitBranch = origBranch
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime = "dev", "", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.GoVersion == "" {
		t.Error("expected go version to be filled in")
	}
}

func TestGetWithLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	BuildTime = "2024-01-15T10:30:00Z"
	GitCommit = "abc1234"
	GitBranch = "main"

	info := Get()
	if !info.IsRelease {
		t.Error("1.0.0 should be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
}

func TestGetDirtyVersion(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0-dirty"

	if Get().IsRelease {
		t.Error("dirty version should not be a release")
	}
}

func TestApplyBuildSettings(t *testing.T) {
	tests := []struct {
		name       string
		info       Info
		settings   []debug.BuildSetting
		wantCommit string
		wantDirty  bool
		wantYear   int
	}{
		{
			name: "vcs stamp fills gaps",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "vcs.time", Value: "2025-03-01T00:00:00Z"},
			},
			wantCommit: "0123456",
			wantDirty:  true,
			wantYear:   2025,
		},
		{
			name: "ldflags win",
			info: Info{GitCommit: "feedbee", BuildDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2025-03-01T00:00:00Z"},
			},
			wantCommit: "feedbee",
			wantYear:   2023,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := tc.info
			applyBuildSettings(&info, tc.settings)
			if info.GitCommit != tc.wantCommit {
				t.Errorf("commit = %q, want %q", info.GitCommit, tc.wantCommit)
			}
			if info.IsDirty != tc.wantDirty {
				t.Errorf("dirty = %v, want %v", info.IsDirty, tc.wantDirty)
			}
			if info.BuildDate.Year() != tc.wantYear {
				t.Errorf("year = %d, want %d", info.BuildDate.Year(), tc.wantYear)
			}
		})
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		GitCommit: "abc1234",
		GitBranch: "main",
		GoVersion: "go1.24.0",
		BuildDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	got := info.String()
	if got != "1.0.0-abc1234 built 2024-01-15T10:30:00Z go1.24.0" {
		t.Errorf("unexpected version line %q", got)
	}

	info.GitBranch = "feature/lazy-sort"
	if !strings.Contains(info.String(), "(feature/lazy-sort)") {
		t.Errorf("expected feature branch in %q", info.String())
	}
}
