// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"runtime"

	"rpmgen-cli/pkg/manifest"
	"rpmgen-cli/pkg/platform"
	"rpmgen-cli/pkg/rpmbuild"
)

const (
	// Namespace is the name of the tool-specific block under
	// package.metadata that this extractor consumes.
	Namespace = "generate-rpm"

	packagePath   = "package"
	metadataPath  = "package.metadata"
	namespacePath = "package.metadata." + Namespace
)

// Options control builder creation.
type Options struct {
	// TargetArch overrides architecture resolution. Empty means the host
	// architecture normalized through the platform substitution table.
	TargetArch string
	// Compression selects the payload compressor. Empty means gzip.
	Compression string
}

// Locate finds the generate-rpm metadata table inside the manifest tree.
// The package table and the metadata extension point must both exist, and
// the namespace entry must itself be a table.
func Locate(m *manifest.Manifest) (manifest.Table, error) {
	pkg, err := packageTable(m)
	if err != nil {
		return manifest.Table{}, err
	}

	metaValue, ok := pkg.Get("metadata")
	if !ok {
		return manifest.Table{}, &MissingFieldError{Path: metadataPath}
	}
	meta, ok := metaValue.AsTable()
	if !ok {
		return manifest.Table{}, &WrongTypeError{Path: metadataPath, Expected: "table"}
	}

	nsValue, ok := meta.Get(Namespace)
	if !ok {
		return manifest.Table{}, &MissingFieldError{Path: namespacePath}
	}
	ns, ok := nsValue.AsTable()
	if !ok {
		return manifest.Table{}, &WrongTypeError{Path: namespacePath, Expected: "table"}
	}
	return ns, nil
}

// GetString resolves an optional string key from the metadata table.
// Absent keys report ok=false without error; a present key of another kind
// fails with WrongTypeError on the full field path.
func GetString(table manifest.Table, key string) (string, bool, error) {
	return optionalScalar(table, key, "string", manifest.Value.AsString)
}

// GetInteger resolves an optional integer key from the metadata table,
// under the same contract as GetString.
func GetInteger(table manifest.Table, key string) (int64, bool, error) {
	return optionalScalar(table, key, "integer", manifest.Value.AsInteger)
}

// optionalScalar is the shared narrowing helper behind GetString and
// GetInteger, parameterized over the scalar kind and its accessor.
func optionalScalar[T any](table manifest.Table, key, expected string, narrow func(manifest.Value) (T, bool)) (T, bool, error) {
	var zero T
	value, ok := table.Get(key)
	if !ok {
		return zero, false, nil
	}
	scalar, ok := narrow(value)
	if !ok {
		return zero, false, &WrongTypeError{Path: namespacePath + "." + key, Expected: expected}
	}
	return scalar, true, nil
}

// CreateBuilder resolves the full package descriptor and file list from the
// manifest and returns a builder ready to finalize. The first resolution
// error aborts; on error no builder escapes.
func CreateBuilder(m *manifest.Manifest, opts Options) (*rpmbuild.Builder, error) {
	md, err := Locate(m)
	if err != nil {
		return nil, err
	}
	pkg, err := packageTable(m)
	if err != nil {
		return nil, err
	}

	name, err := scalarWithFallback(md, pkg, "name", "name")
	if err != nil {
		return nil, err
	}
	version, err := scalarWithFallback(md, pkg, "version", "version")
	if err != nil {
		return nil, err
	}
	license, err := scalarWithFallback(md, pkg, "license", "license")
	if err != nil {
		return nil, err
	}
	summary, err := scalarWithFallback(md, pkg, "summary", "description")
	if err != nil {
		return nil, err
	}

	arch := opts.TargetArch
	if arch == "" {
		arch = platform.NormalizeArch(runtime.GOARCH)
	}
	compression := opts.Compression
	if compression == "" {
		compression = rpmbuild.CompressionGzip
	}

	builder := rpmbuild.NewBuilder(name, version, license, arch, summary).
		Compression(compression)

	entries, err := resolveAssets(md)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		path, err := locateOnDisk(entry.Source, m.Dir())
		if err != nil {
			return nil, err
		}
		builder = builder.WithFile(path, entry.fileOptions())
	}

	if release, ok, err := GetInteger(md, "release"); err != nil {
		return nil, err
	} else if ok {
		// Narrowing is unchecked: out-of-range values are a caller
		// contract violation, same as the 16-bit release tag itself.
		builder = builder.Release(uint16(release))
	}
	if epoch, ok, err := GetInteger(md, "epoch"); err != nil {
		return nil, err
	} else if ok {
		builder = builder.Epoch(int32(epoch))
	}

	for _, script := range []struct {
		key   string
		apply func(string) *rpmbuild.Builder
	}{
		{"pre_install_script", builder.PreInstallScript},
		{"pre_uninstall_script", builder.PreUninstallScript},
		{"post_install_script", builder.PostInstallScript},
		{"post_uninstall_script", builder.PostUninstallScript},
	} {
		body, ok, err := GetString(md, script.key)
		if err != nil {
			return nil, err
		}
		if ok {
			builder = script.apply(body)
		}
	}

	return builder, nil
}

// packageTable returns the top-level package table of the manifest.
func packageTable(m *manifest.Manifest) (manifest.Table, error) {
	value, ok := m.Root().Get("package")
	if !ok {
		return manifest.Table{}, &MissingFieldError{Path: packagePath}
	}
	pkg, ok := value.AsTable()
	if !ok {
		return manifest.Table{}, &WrongTypeError{Path: packagePath, Expected: "table"}
	}
	return pkg, nil
}

// scalarWithFallback resolves a package-level string: the metadata key
// first, then the corresponding top-level package field. When both sources
// are silent it fails with MissingFieldError on the package path.
func scalarWithFallback(md, pkg manifest.Table, mdKey, pkgKey string) (string, error) {
	if s, ok, err := GetString(md, mdKey); err != nil {
		return "", err
	} else if ok {
		return s, nil
	}

	value, ok := pkg.Get(pkgKey)
	if !ok {
		return "", &MissingFieldError{Path: packagePath + "." + pkgKey}
	}
	s, ok := value.AsString()
	if !ok {
		return "", &WrongTypeError{Path: packagePath + "." + pkgKey, Expected: "string"}
	}
	return s, nil
}
