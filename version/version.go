package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X github.com/kbukum/beankit/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Info is the build metadata of the running binary.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	Dirty     bool      `json:"dirty"`
}

// Get merges ldflags values with the module build info. Explicit ldflags win.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  GitCommit,
		Branch:  GitBranch,
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}

	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	return info
}

// Release reports whether the binary was built from a tagged, clean tree.
func (i Info) Release() bool {
	return i.Version != "dev" && !i.Dirty && !strings.Contains(i.Version, "dirty")
}

// Short returns "version[-commit][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version plus branch and build date when known.
// Branches main and master are omitted.
func (i Info) String() string {
	s := i.Short()
	if i.Branch != "" && i.Branch != "main" && i.Branch != "master" {
		s += " (" + i.Branch + ")"
	}
	if !i.BuildDate.IsZero() {
		s += fmt.Sprintf(" built %s", i.BuildDate.UTC().Format(time.RFC3339))
	}
	return s
}

// Fields returns the metadata as logger fields.
func (i Info) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"version": i.Version,
		"release": i.Release(),
	}
	if i.Commit != "" {
		f["commit"] = i.Commit
	}
	if i.GoVersion != "" {
		f["go_version"] = i.GoVersion
	}
	return f
}

// Short returns Get().Short().
func Short() string {
	return Get().Short()
}
