package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/doubley612/bloodhound-automation/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	version, commit, date := Version, Commit, Date
	if version == "dev" {
		version, commit, date = fromModule(version, commit, date)
	}
	return fmt.Sprintf("houndup %s (commit=%s, date=%s)", version, commit, date)
}

// fromModule fills in what `go install` records when no ldflags were given.
func fromModule(version, commit, date string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				commit = s.Value[:12]
			} else {
				commit = s.Value
			}
		case "vcs.time":
			date = s.Value
		}
	}
	return version, commit, date
}
