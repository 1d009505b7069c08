// SPDX-License-Identifier: MPL-2.0

// Package issue turns core resolution errors into user-facing messages.
//
// Core packages (manifest, metadata, rpmbuild) return their precise typed
// errors untouched; the CLI layer wraps them in an ActionableError that adds
// what was being attempted, which file was involved, and how the user might
// fix it. Verbose mode unrolls the full error chain.
package issue
