package version

import (
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

func TestGetWithLdflags(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	GitCommit = "abc1234def"
	GitBranch = "main"
	BuildTime = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.0.0" {
		t.Errorf("expected '1.0.0', got %q", info.Version)
	}
	if info.Commit != "abc1234" {
		t.Errorf("expected commit truncated to 'abc1234', got %q", info.Commit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
	if info.GoVersion == "" {
		t.Error("expected go version from build info")
	}
}

func TestRelease(t *testing.T) {
	tests := []struct {
		info Info
		want bool
	}{
		{Info{Version: "dev"}, false},
		{Info{Version: "1.0.0"}, true},
		{Info{Version: "1.0.0-dirty"}, false},
		{Info{Version: "1.0.0", Dirty: true}, false},
	}
	for _, tc := range tests {
		if got := tc.info.Release(); got != tc.want {
			t.Errorf("Release(%+v) = %v, want %v", tc.info, got, tc.want)
		}
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev", Info{Version: "dev"}, "dev"},
		{"commit", Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestString(t *testing.T) {
	built := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	main := Info{Version: "1.0.0", Commit: "abc1234", Branch: "main", BuildDate: built}.String()
	if strings.Contains(main, "main") {
		t.Errorf("main branch should not appear, got %q", main)
	}
	if !strings.Contains(main, "built 2024-01-15T10:30:00Z") {
		t.Errorf("expected build date, got %q", main)
	}

	feature := Info{Version: "1.0.0", Branch: "feature/qualifiers"}.String()
	if feature != "1.0.0 (feature/qualifiers)" {
		t.Errorf("unexpected feature version %q", feature)
	}
}

func TestFields(t *testing.T) {
	f := Info{Version: "1.0.0", Commit: "abc1234", GoVersion: "go1.26.0"}.Fields()
	if f["version"] != "1.0.0" || f["commit"] != "abc1234" || f["go_version"] != "go1.26.0" {
		t.Errorf("unexpected fields %v", f)
	}
	if f["release"] != true {
		t.Errorf("expected release=true, got %v", f["release"])
	}

	dev := Info{Version: "dev"}.Fields()
	if _, ok := dev["commit"]; ok {
		t.Error("empty commit should be omitted")
	}
}

func TestShortPackageLevel(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.0.0"
	if !strings.HasPrefix(Short(), "2.0.0") {
		t.Errorf("expected short version to start with 2.0.0, got %q", Short())
	}
}
