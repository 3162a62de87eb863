// Package settings provides build metadata, per-run options, and context
// helpers shared by the menusheet CLI and its packages.
package settings

import "fmt"

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "menusheet"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

// Run holds options for a single execution, resolved from flags and config.
type Run struct {
	MinLogLevel int8
	// NoNotify suppresses the desktop notification; the message is logged instead.
	NoNotify bool
	// DryRun prints the rows to stdout instead of writing them to the sink.
	DryRun  bool
	NoColor bool
}

// NewCliParams returns the defaults used by the command line.
func NewCliParams() *Run {
	return &Run{}
}
