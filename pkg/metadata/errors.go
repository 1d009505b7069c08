// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the typed errors below. Callers use errors.Is
// against these for programmatic detection and errors.As for field details.
var (
	// ErrMissingField is wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing field")
	// ErrWrongType is wrapped by WrongTypeError.
	ErrWrongType = errors.New("wrong field type")
	// ErrAssetFileUndefined is wrapped by AssetFileUndefinedError.
	ErrAssetFileUndefined = errors.New("asset field undefined")
	// ErrAssetFileWrongType is wrapped by AssetFileWrongTypeError.
	ErrAssetFileWrongType = errors.New("asset field wrong type")
	// ErrAssetFileNotFound is wrapped by AssetFileNotFoundError.
	ErrAssetFileNotFound = errors.New("asset file not found")
	// ErrAssetGlobInvalid is wrapped by AssetGlobInvalidError.
	ErrAssetGlobInvalid = errors.New("asset glob invalid")
	// ErrAssetRead is wrapped by AssetReadError.
	ErrAssetRead = errors.New("asset file unreadable")
)

type (
	// MissingFieldError reports a required key absent at a named path.
	MissingFieldError struct {
		Path string
	}

	// WrongTypeError reports a key present but not of the expected kind.
	WrongTypeError struct {
		Path     string
		Expected string
	}

	// AssetFileUndefinedError reports a required asset field absent from
	// the entry at the given 0-based index.
	AssetFileUndefinedError struct {
		Index int
		Field string
	}

	// AssetFileWrongTypeError reports an asset field present but not of
	// the expected kind at the given 0-based index.
	AssetFileWrongTypeError struct {
		Index    int
		Field    string
		Expected string
	}

	// AssetFileNotFoundError reports that no search-path candidate for a
	// resolved source exists on disk.
	AssetFileNotFoundError struct {
		Source string
	}

	// AssetGlobInvalidError reports an invalid glob pattern in an asset
	// source. Reserved: no resolution path raises it until glob expansion
	// is implemented.
	AssetGlobInvalidError struct {
		Index   int
		Pattern string
	}

	// AssetReadError reports an unreadable asset file. Reserved alongside
	// AssetGlobInvalidError.
	AssetReadError struct {
		Source string
	}
)

// Error implements the error interface.
func (e *MissingFieldError) Error() string { return "missing field: " + e.Path }

// Unwrap returns ErrMissingField for errors.Is detection.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("field %s must be %s", e.Path, e.Expected)
}

// Unwrap returns ErrWrongType for errors.Is detection.
func (e *WrongTypeError) Unwrap() error { return ErrWrongType }

// Error implements the error interface.
func (e *AssetFileUndefinedError) Error() string {
	return fmt.Sprintf("%s of %d-th asset is undefined", e.Field, e.Index)
}

// Unwrap returns ErrAssetFileUndefined for errors.Is detection.
func (e *AssetFileUndefinedError) Unwrap() error { return ErrAssetFileUndefined }

// Error implements the error interface.
func (e *AssetFileWrongTypeError) Error() string {
	return fmt.Sprintf("%s of %d-th asset must be %s", e.Field, e.Index, e.Expected)
}

// Unwrap returns ErrAssetFileWrongType for errors.Is detection.
func (e *AssetFileWrongTypeError) Unwrap() error { return ErrAssetFileWrongType }

// Error implements the error interface.
func (e *AssetFileNotFoundError) Error() string {
	return "asset file not found: " + e.Source
}

// Unwrap returns ErrAssetFileNotFound for errors.Is detection.
func (e *AssetFileNotFoundError) Unwrap() error { return ErrAssetFileNotFound }

// Error implements the error interface.
func (e *AssetGlobInvalidError) Error() string {
	return fmt.Sprintf("invalid glob at %d: %s", e.Index, e.Pattern)
}

// Unwrap returns ErrAssetGlobInvalid for errors.Is detection.
func (e *AssetGlobInvalidError) Unwrap() error { return ErrAssetGlobInvalid }

// Error implements the error interface.
func (e *AssetReadError) Error() string { return "file unreadable: " + e.Source }

// Unwrap returns ErrAssetRead for errors.Is detection.
func (e *AssetReadError) Unwrap() error { return ErrAssetRead }
