// Package version carries the build metadata reported by --version.
package version

// Stamped at build time via -ldflags; "unknown" in plain go-build binaries.
var (
	GitVersion = "unknown"
	GitCommit  = "unknown"
)
