// Package version carries the wayfind build identity, stamped at build
// time via -ldflags and reported by the health endpoint.
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // release tag, ex: v0.1.0
	Commit    = "none"                          // short git hash
	BuildDate = time.Now().Format(time.RFC3339) // falls back to process start for dev builds
	GoVersion = runtime.Version()
)
