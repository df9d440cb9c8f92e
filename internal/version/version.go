// Package version reports the catbot build.
package version

import "runtime/debug"

// Version is set at build time with -ldflags "-X .../version.Version=...".
var Version = "development"

// Commit is the short git hash, also set through ldflags.
var Commit = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns Version, suffixed with +Commit when the commit is known.
// Binaries built with go install carry no ldflags, so the module version
// and vcs revision from the build info are used instead.
func String() string {
	v, c := Version, Commit
	if v == "development" || c == "unknown" {
		bv, bc := fromBuildInfo()
		if v == "development" && bv != "" {
			v = bv
		}
		if c == "unknown" && bc != "" {
			c = bc
		}
	}
	if c != "unknown" {
		return v + "+" + c
	}
	return v
}

func fromBuildInfo() (string, string) {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "", ""
	}
	v := info.Main.Version
	if v == "(devel)" {
		v = ""
	}
	c := ""
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			c = s.Value
			if len(c) > 7 {
				c = c[:7]
			}
		}
	}
	return v, c
}
