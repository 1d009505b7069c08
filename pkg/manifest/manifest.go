// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrManifestIO is the sentinel wrapped by IOError.
	ErrManifestIO = errors.New("manifest read failed")
	// ErrManifestParse is the sentinel wrapped by ParseError.
	ErrManifestParse = errors.New("manifest parse failed")
)

type (
	// Manifest is a loaded package manifest: the decoded value tree plus
	// the path it was read from. The tree is read-only after Load.
	Manifest struct {
		root Table
		path string
	}

	// IOError reports a failure to read the manifest file itself. It keeps
	// the path so callers can distinguish "manifest not found" from I/O
	// errors raised later during asset lookup.
	IOError struct {
		Path string
		Err  error
	}

	// ParseError reports a syntactically invalid manifest.
	ParseError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// Unwrap returns the underlying I/O error.
func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrManifestIO so callers can use errors.Is for detection.
func (e *IOError) Is(target error) bool { return target == ErrManifestIO }

// Error implements the error interface.
func (e *ParseError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrManifestParse so callers can use errors.Is for detection.
func (e *ParseError) Is(target error) bool { return target == ErrManifestParse }

// Load reads and decodes the TOML manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return LoadBytes(data, path)
}

// LoadBytes decodes manifest content that was already read. The path is
// retained for error reporting and for resolving manifest-relative assets.
func LoadBytes(data []byte, path string) (*Manifest, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Manifest{root: Table{entries: root}, path: path}, nil
}

// Root returns the top-level table of the manifest.
func (m *Manifest) Root() Table { return m.root }

// Path returns the path the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// Dir returns the directory containing the manifest file. Asset sources
// that do not resolve against the working directory are retried relative
// to this directory.
func (m *Manifest) Dir() string { return filepath.Dir(m.path) }
