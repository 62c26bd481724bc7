// Package build holds build-time information, set by linker flags.
package build

var (
	// Version is the application version.
	Version = "dev"
	// Commit is the source revision the binary was built from, if known.
	Commit = ""
)

// String returns the version followed by the commit when one is set.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
