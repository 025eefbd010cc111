package utils

import (
	"runtime/debug"
)

const developmentVersion = "(devel)"

// Version is set at build time with
// -ldflags "-X github.com/tyemirov/repomd/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linked-in version, falling back to the
// module version recorded in the build information and then to "unknown".
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	return "unknown"
}
