// Package version holds build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata on one line.
func String() string {
	return fmt.Sprintf("cohesion %s (commit %s, built %s, %s)", Version, Commit, Date, runtime.Version())
}
