// Package buildinfo carries version metadata injected at build time.
package buildinfo

// Set via -ldflags when building a release.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
