// Package build holds the version stamped into the ppac binary.
package build

// Version is reported by `ppac version` and `ppac --version`.
// Release builds set it with -ldflags "-X go.trai.ch/ppac/internal/build.Version=<tag>".
var Version = "dev"
