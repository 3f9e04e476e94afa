package version

// Version is the current release of issue-title-ai.
const Version = "0.1.0"

// FullVersion returns the version with the v prefix.
func FullVersion() string {
	return "v" + Version
}
