// Package build holds version information stamped at build time.
package build

// Version is the shrub version. It defaults to "dev" and is overridden by
// linker flags in release builds.
var Version = "dev"
