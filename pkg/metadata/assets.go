// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rpmgen-cli/pkg/manifest"
	"rpmgen-cli/pkg/rpmbuild"
)

const assetsPath = namespacePath + ".assets"

// Unix file-type bits. The mask isolates the object-kind bits of a mode
// value; permission bits live below it.
const (
	fileTypeMask = 0o170000
	fileTypeDir  = 0o040000
	fileTypeReg  = 0o100000
)

// FileEntry is one validated asset row: a source path on disk, an install
// destination inside the package, and ownership/permission/classification
// attributes. A FileEntry only exists fully populated; resolution of an
// entry either succeeds completely or fails with the first field error.
type FileEntry struct {
	// Source is the packaged file's path, absolute or relative to the
	// working directory or the manifest directory. Never empty.
	Source string
	// Dest is the absolute install path inside the target package. Never empty.
	Dest string
	// User and Group are the owning user/group names. Empty means unset;
	// the builder applies the package default.
	User  string
	Group string
	// Mode is the full file mode (type bits plus permissions), valid only
	// when ModeSet is true.
	Mode    uint32
	ModeSet bool
	// Config marks the file as a configuration file preserved across
	// upgrades.
	Config bool
	// Doc marks the file as documentation.
	Doc bool
}

// fileOptions converts the entry's attributes into the builder's per-file
// options record.
func (e FileEntry) fileOptions() rpmbuild.FileOptions {
	opts := rpmbuild.NewFileOptions(e.Dest)
	if e.User != "" {
		opts = opts.User(e.User)
	}
	if e.Group != "" {
		opts = opts.Group(e.Group)
	}
	if e.ModeSet {
		opts = opts.Mode(e.Mode)
	}
	if e.Config {
		opts = opts.AsConfig()
	}
	if e.Doc {
		opts = opts.AsDoc()
	}
	return opts
}

// resolveAssets converts the assets array into an ordered sequence of file
// entries. Resolution is fail-fast: the first malformed field, in manifest
// order, aborts the whole array.
func resolveAssets(md manifest.Table) ([]FileEntry, error) {
	value, ok := md.Get("assets")
	if !ok {
		return nil, &MissingFieldError{Path: assetsPath}
	}
	assets, ok := value.AsArray()
	if !ok {
		return nil, &WrongTypeError{Path: assetsPath, Expected: "array"}
	}

	entries := make([]FileEntry, 0, len(assets))
	for idx, elem := range assets {
		table, ok := elem.AsTable()
		if !ok {
			// Historical quirk kept on purpose: a non-table element
			// reports as a missing source rather than a dedicated kind.
			return nil, &AssetFileUndefinedError{Index: idx, Field: "source"}
		}
		entry, err := resolveEntry(table, idx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// resolveEntry validates every field of a single asset table.
func resolveEntry(table manifest.Table, idx int) (FileEntry, error) {
	source, err := requiredAssetString(table, idx, "source")
	if err != nil {
		return FileEntry{}, err
	}
	dest, err := requiredAssetString(table, idx, "dest")
	if err != nil {
		return FileEntry{}, err
	}
	user, _, err := optionalAssetString(table, idx, "user")
	if err != nil {
		return FileEntry{}, err
	}
	group, _, err := optionalAssetString(table, idx, "group")
	if err != nil {
		return FileEntry{}, err
	}
	mode, modeSet, err := resolveMode(table, idx, source)
	if err != nil {
		return FileEntry{}, err
	}
	config, err := optionalAssetBool(table, idx, "config")
	if err != nil {
		return FileEntry{}, err
	}
	doc, err := optionalAssetBool(table, idx, "doc")
	if err != nil {
		return FileEntry{}, err
	}

	return FileEntry{
		Source:  source,
		Dest:    dest,
		User:    user,
		Group:   group,
		Mode:    mode,
		ModeSet: modeSet,
		Config:  config,
		Doc:     doc,
	}, nil
}

// resolveMode parses the optional octal mode string and completes the
// file-type bits. Type bits already present in the parsed value are kept
// verbatim; otherwise they are synthesized from the shape of the source
// path (trailing separator means directory).
func resolveMode(table manifest.Table, idx int, source string) (uint32, bool, error) {
	value, ok := table.Get("mode")
	if !ok {
		return 0, false, nil
	}
	text, ok := value.AsString()
	if !ok {
		return 0, false, &AssetFileWrongTypeError{Index: idx, Field: "mode", Expected: "string"}
	}
	mode, err := strconv.ParseUint(text, 8, 32)
	if err != nil {
		return 0, false, &AssetFileWrongTypeError{Index: idx, Field: "mode", Expected: "oct-string"}
	}

	typeBits := uint64(0)
	switch {
	case mode&fileTypeMask != 0:
		// keep the given type bits
	case strings.HasSuffix(source, "/"):
		typeBits = fileTypeDir
	default:
		typeBits = fileTypeReg
	}
	return uint32(typeBits | mode), true, nil
}

func requiredAssetString(table manifest.Table, idx int, field string) (string, error) {
	value, ok := table.Get(field)
	if !ok {
		return "", &AssetFileUndefinedError{Index: idx, Field: field}
	}
	s, ok := value.AsString()
	if !ok {
		return "", &AssetFileWrongTypeError{Index: idx, Field: field, Expected: "string"}
	}
	return s, nil
}

func optionalAssetString(table manifest.Table, idx int, field string) (string, bool, error) {
	value, ok := table.Get(field)
	if !ok {
		return "", false, nil
	}
	s, ok := value.AsString()
	if !ok {
		return "", false, &AssetFileWrongTypeError{Index: idx, Field: field, Expected: "string"}
	}
	return s, true, nil
}

func optionalAssetBool(table manifest.Table, idx int, field string) (bool, error) {
	value, ok := table.Get(field)
	if !ok {
		return false, nil
	}
	b, ok := value.AsBool()
	if !ok {
		return false, &AssetFileWrongTypeError{Index: idx, Field: field, Expected: "bool"}
	}
	return b, nil
}

// locateOnDisk probes the search path for an asset source: first the source
// as given (working-directory relative or absolute), then relative to the
// manifest's directory. The first existing candidate wins.
func locateOnDisk(source, baseDir string) (string, error) {
	candidates := []string{source, filepath.Join(baseDir, source)}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &AssetFileNotFoundError{Source: source}
}
