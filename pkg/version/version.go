// Package version holds build-time version information, injected with
// -ldflags.
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
)
