// SPDX-License-Identifier: MPL-2.0

// Package rpmbuild accumulates a validated package description and writes
// it out as an RPM archive.
//
// The Builder is a mutable accumulator with a fluent surface: package
// scalars, per-file options and lifecycle scriptlets are staged first, then
// a single terminal Finalize hands the immutable result to the archive
// writer (google/rpmpack). Header layout and payload compression are the
// writer's concern; this package owns only the staging contract.
package rpmbuild
