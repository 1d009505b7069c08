// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes OS and architecture naming so the string
// literals are not scattered across the codebase.
package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// NormalizeArch maps a runtime.GOARCH name onto the architecture string RPM
// tooling expects. Names without a substitution pass through unchanged.
func NormalizeArch(goarch string) string {
	switch goarch {
	case "386":
		return "i586"
	case "amd64":
		return "x86_64"
	case "arm":
		return "armhfp"
	case "arm64":
		return "aarch64"
	case "ppc64":
		return "ppc64"
	default:
		return goarch
	}
}
