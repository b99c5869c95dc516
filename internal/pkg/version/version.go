// Package version provides build information, the variables are set by the linker.
package version

import (
	"runtime"
)

const DevVersionValue = "dev"

// nolint: gochecknoglobals
var (
	BuildVersion = DevVersionValue
	GitCommit    = "-"
	BuildDate    = "-"
)

// Version for --version flag.
func Version() string {
	return "Version:    " + BuildVersion + "\n" +
		"Git commit: " + GitCommit + "\n" +
		"Build date: " + BuildDate + "\n" +
		"Go version: " + runtime.Version() + "\n" +
		"Os/Arch:    " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
}
