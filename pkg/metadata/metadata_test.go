// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"rpmgen-cli/pkg/manifest"
	"rpmgen-cli/pkg/platform"
)

// loadFixture decodes a manifest from source, anchored in a fresh temp dir
// so manifest-relative asset lookup has a real base directory.
func loadFixture(t *testing.T, source string) *manifest.Manifest {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("fixture manifest did not parse: %v", err)
	}
	return m
}

// writeAsset creates an asset file next to the manifest.
func writeAsset(t *testing.T, m *manifest.Manifest, name string) {
	t.Helper()
	path := filepath.Join(m.Dir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("payload\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

const minimalManifest = `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"
description = "A demo package"

[package.metadata.generate-rpm]
assets = []
`

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		sentinel error
		path     string
	}{
		{
			name:     "no package table",
			source:   `[dependencies]` + "\n" + `foo = "1"` + "\n",
			sentinel: ErrMissingField,
			path:     "package",
		},
		{
			name:     "no metadata",
			source:   "[package]\nname = \"demo\"\n",
			sentinel: ErrMissingField,
			path:     "package.metadata",
		},
		{
			name:     "metadata not a table",
			source:   "[package]\nname = \"demo\"\nmetadata = 3\n",
			sentinel: ErrWrongType,
			path:     "package.metadata",
		},
		{
			name:     "namespace missing",
			source:   "[package.metadata.other-tool]\nx = 1\n",
			sentinel: ErrMissingField,
			path:     "package.metadata.generate-rpm",
		},
		{
			name:     "namespace not a table",
			source:   "[package.metadata]\ngenerate-rpm = \"oops\"\n",
			sentinel: ErrWrongType,
			path:     "package.metadata.generate-rpm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Locate(loadFixture(t, tt.source))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			assertFieldPath(t, err, tt.path)
		})
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		md, err := Locate(loadFixture(t, minimalManifest))
		if err != nil {
			t.Fatalf("Locate() error: %v", err)
		}
		if _, ok := md.Get("assets"); !ok {
			t.Error("located table is missing the assets key")
		}
	})
}

// assertFieldPath checks the path carried by either missing-field or
// wrong-type errors.
func assertFieldPath(t *testing.T, err error, want string) {
	t.Helper()
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		if missing.Path != want {
			t.Errorf("MissingFieldError.Path = %q, want %q", missing.Path, want)
		}
		return
	}
	var wrong *WrongTypeError
	if errors.As(err, &wrong) {
		if wrong.Path != want {
			t.Errorf("WrongTypeError.Path = %q, want %q", wrong.Path, want)
		}
		return
	}
	t.Errorf("error %T carries no field path", err)
}

func TestGetScalars(t *testing.T) {
	t.Parallel()

	md, err := Locate(loadFixture(t, `
[package.metadata.generate-rpm]
name = "other"
release = 3
summary = 7
epoch = "not-a-number"
`))
	if err != nil {
		t.Fatal(err)
	}

	if s, ok, err := GetString(md, "name"); err != nil || !ok || s != "other" {
		t.Errorf("GetString(name) = %q, %t, %v", s, ok, err)
	}
	if _, ok, err := GetString(md, "absent"); err != nil || ok {
		t.Errorf("GetString(absent) = _, %t, %v; want absent without error", ok, err)
	}
	if n, ok, err := GetInteger(md, "release"); err != nil || !ok || n != 3 {
		t.Errorf("GetInteger(release) = %d, %t, %v", n, ok, err)
	}

	_, _, err = GetString(md, "summary")
	var wrong *WrongTypeError
	if !errors.As(err, &wrong) {
		t.Fatalf("GetString on integer: error = %v, want WrongTypeError", err)
	}
	if wrong.Path != "package.metadata.generate-rpm.summary" || wrong.Expected != "string" {
		t.Errorf("WrongTypeError = %+v", wrong)
	}

	_, _, err = GetInteger(md, "epoch")
	if !errors.As(err, &wrong) || wrong.Expected != "integer" {
		t.Errorf("GetInteger on string: error = %v, want WrongTypeError(integer)", err)
	}
}

func TestCreateBuilderScalarFallback(t *testing.T) {
	t.Parallel()

	m := loadFixture(t, `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"
description = "A demo package"

[package.metadata.generate-rpm]
name = "demo-rpm"
summary = "Overridden summary"
assets = []
`)
	builder, err := CreateBuilder(m, Options{TargetArch: "noarch"})
	if err != nil {
		t.Fatalf("CreateBuilder() error: %v", err)
	}
	desc := builder.Descriptor()

	if desc.Name != "demo-rpm" {
		t.Errorf("Name = %q, want metadata override %q", desc.Name, "demo-rpm")
	}
	if desc.Version != "0.1.0" {
		t.Errorf("Version = %q, want package fallback %q", desc.Version, "0.1.0")
	}
	if desc.License != "MIT" {
		t.Errorf("License = %q, want package fallback %q", desc.License, "MIT")
	}
	if desc.Summary != "Overridden summary" {
		t.Errorf("Summary = %q, want metadata override", desc.Summary)
	}
}

func TestCreateBuilderMandatoryFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		path   string
	}{
		{
			name: "license absent from both sources",
			source: `
[package]
name = "demo"
version = "0.1.0"
description = "A demo package"

[package.metadata.generate-rpm]
assets = []
`,
			path: "package.license",
		},
		{
			name: "description absent from both sources",
			source: `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"

[package.metadata.generate-rpm]
assets = []
`,
			path: "package.description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := CreateBuilder(loadFixture(t, tt.source), Options{})
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("error = %v, want MissingFieldError", err)
			}
			if missing.Path != tt.path {
				t.Errorf("Path = %q, want %q", missing.Path, tt.path)
			}
		})
	}
}

func TestCreateBuilderArchResolution(t *testing.T) {
	t.Parallel()

	m := loadFixture(t, minimalManifest)

	builder, err := CreateBuilder(m, Options{TargetArch: "noarch"})
	if err != nil {
		t.Fatal(err)
	}
	if arch := builder.Descriptor().Arch; arch != "noarch" {
		t.Errorf("explicit override ignored: Arch = %q", arch)
	}

	builder, err = CreateBuilder(m, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := platform.NormalizeArch(runtime.GOARCH)
	if arch := builder.Descriptor().Arch; arch != want {
		t.Errorf("Arch = %q, want normalized host arch %q", arch, want)
	}
}

func TestCreateBuilderFullManifest(t *testing.T) {
	t.Parallel()

	m := loadFixture(t, `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"
description = "A demo package"

[package.metadata.generate-rpm]
release = 4
epoch = 2
pre_install_script = "echo pre-install"
post_uninstall_script = "echo post-uninstall"

[[package.metadata.generate-rpm.assets]]
source = "target/release/demo"
dest = "/usr/bin/demo"
mode = "755"

[[package.metadata.generate-rpm.assets]]
source = "LICENSE"
dest = "/usr/share/doc/demo/LICENSE"
mode = "644"
doc = true
`)
	writeAsset(t, m, "target/release/demo")
	writeAsset(t, m, "LICENSE")

	builder, err := CreateBuilder(m, Options{TargetArch: "x86_64"})
	if err != nil {
		t.Fatalf("CreateBuilder() error: %v", err)
	}

	desc := builder.Descriptor()
	if !desc.HasRelease || desc.Release != 4 {
		t.Errorf("Release = %d (set=%t), want 4", desc.Release, desc.HasRelease)
	}
	if !desc.HasEpoch || desc.Epoch != 2 {
		t.Errorf("Epoch = %d (set=%t), want 2", desc.Epoch, desc.HasEpoch)
	}

	scriptlets := builder.Scriptlets()
	if scriptlets["preinstall"] != "echo pre-install" {
		t.Errorf("preinstall = %q", scriptlets["preinstall"])
	}
	if scriptlets["postuninstall"] != "echo post-uninstall" {
		t.Errorf("postuninstall = %q", scriptlets["postuninstall"])
	}
	if _, ok := scriptlets["postinstall"]; ok {
		t.Error("postinstall scriptlet present but never declared")
	}

	files := builder.Files()
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Options.Dest() != "/usr/bin/demo" {
		t.Errorf("files out of manifest order: first dest = %q", files[0].Options.Dest())
	}
	if mode, ok := files[0].Options.FileMode(); !ok || mode != 0o100755 {
		t.Errorf("first file mode = %o (set=%t), want 100755", mode, ok)
	}
	if !files[1].Options.IsDoc() {
		t.Error("doc flag lost on second file")
	}
}

func TestCreateBuilderAssetNotFound(t *testing.T) {
	t.Parallel()

	m := loadFixture(t, `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"
description = "A demo package"

[[package.metadata.generate-rpm.assets]]
source = "LICENSE"
dest = "/usr/share/doc/demo/LICENSE"
`)
	_, err := CreateBuilder(m, Options{})
	var notFound *AssetFileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want AssetFileNotFoundError", err)
	}
	if notFound.Source != "LICENSE" {
		t.Errorf("Source = %q, want %q", notFound.Source, "LICENSE")
	}
}

func TestCreateBuilderDeterministic(t *testing.T) {
	t.Parallel()

	m := loadFixture(t, `
[package]
name = "demo"
version = "0.1.0"
license = "MIT"
description = "A demo package"

[package.metadata.generate-rpm]
release = 1

[[package.metadata.generate-rpm.assets]]
source = "LICENSE"
dest = "/usr/share/doc/demo/LICENSE"
mode = "644"
doc = true
`)
	writeAsset(t, m, "LICENSE")

	first, err := CreateBuilder(m, Options{TargetArch: "noarch"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := CreateBuilder(m, Options{TargetArch: "noarch"})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.Descriptor(), second.Descriptor()) {
		t.Errorf("descriptors differ across runs:\n%+v\n%+v", first.Descriptor(), second.Descriptor())
	}
	if !reflect.DeepEqual(first.Files(), second.Files()) {
		t.Error("file sequences differ across runs")
	}
	if !reflect.DeepEqual(first.Scriptlets(), second.Scriptlets()) {
		t.Error("scriptlets differ across runs")
	}
}
