// Package version reports build information for the seqkit binary.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags; anything left unset is filled from the build info the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0" ./cmd/seqkit
package version
