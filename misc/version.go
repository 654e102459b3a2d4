// Package misc holds program identity which is set at build time.
package misc

import (
	"runtime/debug"
)

// Overwritten with -ldflags "-X stylecheck/misc.version=... -X stylecheck/misc.gitHash=..."
var (
	appName = "stylecheck"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit the binary was built from, falling back to VCS
// information recorded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
