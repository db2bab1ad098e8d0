// Package version reports the viewstack build version.
package version

import "runtime/debug"

// Version is overridden at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = "development"

// Commit is the git commit hash, overridden at build time like Version.
var Commit = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version, with the commit appended when known. A
// development build installed with go install reports its module version.
func String() string {
	v := Version
	if v == "development" {
		if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if Commit != "unknown" {
		return v + "+" + Commit
	}
	return v
}
