// SPDX-License-Identifier: MPL-2.0

// Package scriptcheck runs an advisory syntax check over lifecycle
// scriptlets. Findings are for warning output only: scriptlets are always
// embedded verbatim, and a package build never fails on a scriptlet the
// target system's shell might still accept.
package scriptcheck

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Check parses the scriptlet body as POSIX shell. The name identifies the
// scriptlet tag (e.g. "preinstall") in the returned error.
func Check(name, body string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(body), name)
	if err != nil {
		return fmt.Errorf("scriptlet %s: %w", name, err)
	}
	return nil
}
