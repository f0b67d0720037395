// Package version reports the gqlkit module version.
//
// The version is read from the build info of the binary that links gqlkit.
// Builds of gqlkit itself can pin it with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gqlkit/version.Version=1.2.0"
package version
