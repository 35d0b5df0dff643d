// Package version exposes the build version of alphaagent.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionContent string

// override is set at link time with -ldflags "-X .../internal/version.override=v1.2.3".
var override string

// Get returns the current version, with whitespace trimmed.
func Get() string {
	if override != "" {
		return strings.TrimSpace(override)
	}
	return strings.TrimSpace(versionContent)
}

// String formats the version for CLI output.
func String() string {
	return "alphaagent version " + Get()
}
