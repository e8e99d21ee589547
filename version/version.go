// Package version holds the build version, set at link time with
// -ldflags "-X github.com/tilesnake/engine/version.Version=...".
package version

// Version is the engine version.
var Version = "dev"
