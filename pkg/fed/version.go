package fed

// Version information for the fed module.
const (
	// Version is the current version of the fed module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
