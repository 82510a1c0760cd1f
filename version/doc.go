// Package version reports build information for the --version flag.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags, falling back to the VCS stamp of the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0"
package version
