// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	content := "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Path() != path {
		t.Errorf("Path() = %q, want %q", m.Path(), path)
	}
	if m.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", m.Dir(), dir)
	}
	pkg, ok := m.Root().Get("package")
	if !ok {
		t.Fatal("package table missing from loaded tree")
	}
	if _, ok := pkg.AsTable(); !ok {
		t.Fatal("package did not narrow to table")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "Cargo.toml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, ErrManifestIO) {
		t.Errorf("errors.Is(err, ErrManifestIO) = false; err = %v", err)
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error is %T, want *IOError", err)
	}
	if ioErr.Path != path {
		t.Errorf("IOError.Path = %q, want %q", ioErr.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("underlying not-exist error lost in wrapping")
	}
}

func TestLoadParseError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Cargo.toml")
	if err := os.WriteFile(path, []byte("[package\nname ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed manifest")
	}
	if !errors.Is(err, ErrManifestParse) {
		t.Errorf("errors.Is(err, ErrManifestParse) = false; err = %v", err)
	}
	if errors.Is(err, ErrManifestIO) {
		t.Error("parse failure must not report as I/O failure")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not mention the manifest path", err)
	}
}
