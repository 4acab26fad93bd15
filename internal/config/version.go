package config

import (
	"fmt"
	"runtime/debug"
)

// set with -ldflags "-X github.com/willie68/go_globetiler/internal/config.version=..."
var (
	version = "0.1.0"
	commit  = ""
)

type Version struct {
	Version string
	Commit  string
}

func NewVersion() *Version {
	v := &Version{
		Version: version,
		Commit:  commit,
	}
	if v.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					v.Commit = s.Value
				}
			}
		}
	}
	return v
}

func (v *Version) String() string {
	if v.Commit == "" {
		return fmt.Sprintf("globetiler %s", v.Version)
	}
	return fmt.Sprintf("globetiler %s (%s)", v.Version, v.Commit)
}
