// Package misc keeps build time information.
package misc

// Values below are set at link time with -ldflags "-X gsdoc/misc.version=...".
var (
	appName = "gsdoc"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
