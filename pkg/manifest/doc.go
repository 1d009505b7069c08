// SPDX-License-Identifier: MPL-2.0

// Package manifest loads TOML package manifests and exposes them as a
// generic, read-only value tree.
//
// The tree deliberately stays loose: every node is a Value that callers
// narrow with AsString, AsInteger, AsBool, AsTable or AsArray. Narrowing
// never panics and never guesses; a kind mismatch is reported to the caller,
// who decides which typed error to raise for which field path. This keeps
// all field-level validation policy out of the parser and inside the
// metadata extractor.
package manifest
