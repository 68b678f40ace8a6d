package main

import (
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/cli"
	"github.com/MEETJOGANI/MEETA-DRIVE/internal/version"
)

// Fallback version info for non-Makefile builds; releases override these
// via -ldflags.
var (
	buildVersion = "v0.1.0-dev"
	buildTime    = "unknown"
)

func main() {
	if version.Version == "v0.1.0-dev" {
		version.Version = buildVersion
		version.BuildTime = buildTime
	}
	cli.Execute()
}
