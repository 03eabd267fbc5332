package frdsource

import (
	"fmt"

	"github.com/bft-labs/frdsource/pkg/checksum"
	"github.com/bft-labs/frdsource/pkg/fed"
	"github.com/bft-labs/frdsource/pkg/frd"
	"github.com/bft-labs/frdsource/pkg/log"
)

// Version information for the frdsource module.
const (
	// Version is the current version of the frdsource module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

type moduleVersion struct {
	version    string
	minVersion string
}

func modules() map[string]moduleVersion {
	return map[string]moduleVersion{
		"frd":      {frd.Version, frd.MinCompatibleVersion},
		"fed":      {fed.Version, fed.MinCompatibleVersion},
		"checksum": {checksum.Version, checksum.MinCompatibleVersion},
		"log":      {log.Version, log.MinCompatibleVersion},
	}
}

// ModuleVersions returns the version of every sub-module.
func ModuleVersions() map[string]string {
	out := map[string]string{"frdsource": Version}
	for name, m := range modules() {
		out[name] = m.version
	}
	return out
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	for name, m := range modules() {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
