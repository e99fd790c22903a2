package version

// Version is the version of the build, overridden at link time with
// -ldflags "-X github.com/readable-research/readable/internal/version.Version=...".
var Version = "0.1.0-dev"
