// Package version carries build metadata, set with -ldflags -X.
package version

var (
	// Version is the library release.
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
)

// String is Version, followed by the short commit when known.
func String() string {
	if GitSHA == "" || GitSHA == "unknown" {
		return Version
	}
	sha := GitSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return Version + "+" + sha
}
