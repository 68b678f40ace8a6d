// Package version holds build version information.
package version

// Set at build time via -ldflags. Defaults cover plain `go build`.
var (
	Version   = "v0.1.0-dev"
	BuildTime = "unknown"
)

// String returns the full version string.
func String() string {
	return Version + " (" + BuildTime + ")"
}
