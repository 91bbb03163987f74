// Package version holds build metadata injected with -ldflags.
package version

// Build metadata, overridden at link time:
//
//	-ldflags "-X github.com/Sumatoshi-tech/difr/pkg/version.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the one-line version banner printed by the CLI.
func String(binary string) string {
	return binary + " " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
