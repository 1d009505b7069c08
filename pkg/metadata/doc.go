// SPDX-License-Identifier: MPL-2.0

// Package metadata resolves the "generate-rpm" block of a package manifest
// into a validated package builder.
//
// Resolution is a pure function of the manifest tree (plus one existence
// probe per asset): it locates package.metadata.generate-rpm, resolves the
// package-level scalars with fallback to the top-level package fields, and
// converts the assets array into strictly typed file entries. Every
// malformed input maps to exactly one typed error carrying the offending
// field path (and, for assets, the 0-based entry index). The whole pipeline
// is fail-fast: the first error aborts resolution and no package is built.
package metadata
