package version

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the import path gqlkit is published under.
const ModulePath = "github.com/kbukum/gqlkit"

// Version is set at build time; "dev" means unset.
var Version = "dev"

// Info describes the gqlkit build linked into the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the linked gqlkit version. An ldflags Version wins; otherwise
// the version comes from the dependency list, or from VCS settings when
// gqlkit is the main module.
func Get() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{Version: Version}
	}
	return fromBuildInfo(bi, Version)
}

// Short returns the version, suffixed with the commit when known.
func Short() string {
	return Get().String()
}

// String renders "version[-commit][-dirty]".
func (i Info) String() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		parts = append(parts, i.Commit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

func fromBuildInfo(bi *debug.BuildInfo, pinned string) Info {
	info := Info{Version: pinned, GoVersion: bi.GoVersion}
	if pinned != "dev" {
		return info
	}

	if bi.Main.Path == ModulePath {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
				if len(info.Commit) > 7 {
					info.Commit = info.Commit[:7]
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
		return info
	}

	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			info.Version = dep.Replace.Version
		} else if dep.Version != "" {
			info.Version = dep.Version
		}
		break
	}
	return info
}
