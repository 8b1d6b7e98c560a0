package mycota

var (
	// Version is overridden by ldflags at release build time.
	Version = "v0.1.0+dev"

	// Build is the build timestamp, also set by ldflags.
	Build = "n/a"
)
