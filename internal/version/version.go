// Package version exposes the build identity of the pointprep binary.
// Release builds overwrite the defaults with -ldflags; a plain
// `go build` reports itself as a dev build.
package version

import "fmt"

var (
	Version   = "dev"
	GitSHA    = "unknown"
	BuildTime = "unknown"
)

// String formats the build identity as a single human-readable line.
func String() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, GitSHA, BuildTime)
}
