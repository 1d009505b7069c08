// SPDX-License-Identifier: MPL-2.0

package rpmbuild

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/rpmpack"
)

// Payload compression algorithms accepted by Compression.
const (
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
	CompressionXz   = "xz"
)

// Default ownership and modes applied when a staged file carries none.
const (
	defaultOwner    = "root"
	defaultFileMode = 0o100644
	defaultDirMode  = 0o040755
)

type (
	// Builder accumulates the package descriptor, staged files and
	// lifecycle scriptlets before a single terminal Finalize.
	Builder struct {
		desc    Descriptor
		files   []StagedFile
		scripts scriptlets
	}

	// Descriptor is the resolved set of package-level scalars used to
	// stamp the built package. It is an immutable snapshot once read.
	Descriptor struct {
		Name        string
		Version     string
		License     string
		Arch        string
		Summary     string
		Compression string
		Release     uint16
		HasRelease  bool
		Epoch       int32
		HasEpoch    bool
	}

	// StagedFile pairs a located on-disk path with its install options.
	StagedFile struct {
		Path    string
		Options FileOptions
	}

	scriptlets struct {
		preInstall    string
		hasPreInstall bool
		postInstall   string
		hasPostIn     bool
		preUninstall  string
		hasPreUn      bool
		postUninstall string
		hasPostUn     bool
	}
)

// NewBuilder creates a builder for the given mandatory package scalars.
// Compression defaults to gzip until overridden.
func NewBuilder(name, version, license, arch, summary string) *Builder {
	return &Builder{
		desc: Descriptor{
			Name:        name,
			Version:     version,
			License:     license,
			Arch:        arch,
			Summary:     summary,
			Compression: CompressionGzip,
		},
	}
}

// Compression selects the payload compression algorithm.
func (b *Builder) Compression(alg string) *Builder {
	b.desc.Compression = alg
	return b
}

// Release sets the RPM release tag.
func (b *Builder) Release(release uint16) *Builder {
	b.desc.Release = release
	b.desc.HasRelease = true
	return b
}

// Epoch sets the RPM epoch tag.
func (b *Builder) Epoch(epoch int32) *Builder {
	b.desc.Epoch = epoch
	b.desc.HasEpoch = true
	return b
}

// WithFile stages one file for packaging. The path must already be resolved
// to an existing location; the builder reads it only at Finalize.
func (b *Builder) WithFile(path string, opts FileOptions) *Builder {
	b.files = append(b.files, StagedFile{Path: path, Options: opts})
	return b
}

// PreInstallScript embeds the pre-install scriptlet body verbatim.
func (b *Builder) PreInstallScript(body string) *Builder {
	b.scripts.preInstall, b.scripts.hasPreInstall = body, true
	return b
}

// PostInstallScript embeds the post-install scriptlet body verbatim.
func (b *Builder) PostInstallScript(body string) *Builder {
	b.scripts.postInstall, b.scripts.hasPostIn = body, true
	return b
}

// PreUninstallScript embeds the pre-uninstall scriptlet body verbatim.
func (b *Builder) PreUninstallScript(body string) *Builder {
	b.scripts.preUninstall, b.scripts.hasPreUn = body, true
	return b
}

// PostUninstallScript embeds the post-uninstall scriptlet body verbatim.
func (b *Builder) PostUninstallScript(body string) *Builder {
	b.scripts.postUninstall, b.scripts.hasPostUn = body, true
	return b
}

// Descriptor returns a snapshot of the accumulated package scalars.
func (b *Builder) Descriptor() Descriptor { return b.desc }

// Files returns the staged files in packaging order.
func (b *Builder) Files() []StagedFile {
	files := make([]StagedFile, len(b.files))
	copy(files, b.files)
	return files
}

// Scriptlets returns the embedded scriptlet bodies keyed by tag name
// (preinstall, postinstall, preuninstall, postuninstall).
func (b *Builder) Scriptlets() map[string]string {
	out := make(map[string]string, 4)
	if b.scripts.hasPreInstall {
		out["preinstall"] = b.scripts.preInstall
	}
	if b.scripts.hasPostIn {
		out["postinstall"] = b.scripts.postInstall
	}
	if b.scripts.hasPreUn {
		out["preuninstall"] = b.scripts.preUninstall
	}
	if b.scripts.hasPostUn {
		out["postuninstall"] = b.scripts.postUninstall
	}
	return out
}

// Finalize reads every staged file and writes the finished RPM to w.
// The builder is not reusable afterwards.
func (b *Builder) Finalize(w io.Writer) error {
	release := "1"
	if b.desc.HasRelease {
		release = strconv.FormatUint(uint64(b.desc.Release), 10)
	}

	meta := rpmpack.RPMMetaData{
		Name:        b.desc.Name,
		Version:     b.desc.Version,
		Release:     release,
		Arch:        b.desc.Arch,
		OS:          "linux",
		Licence:     b.desc.License,
		Summary:     b.desc.Summary,
		Description: b.desc.Summary,
		Compressor:  b.desc.Compression,
	}
	if b.desc.HasEpoch {
		meta.Epoch = uint32(b.desc.Epoch)
	}

	rpm, err := rpmpack.NewRPM(meta)
	if err != nil {
		return fmt.Errorf("create package %s: %w", b.desc.Name, err)
	}

	for _, staged := range b.files {
		file, err := stagedToRPMFile(staged)
		if err != nil {
			return err
		}
		rpm.AddFile(file)
	}

	if b.scripts.hasPreInstall {
		rpm.AddPrein(b.scripts.preInstall)
	}
	if b.scripts.hasPostIn {
		rpm.AddPostin(b.scripts.postInstall)
	}
	if b.scripts.hasPreUn {
		rpm.AddPreun(b.scripts.preUninstall)
	}
	if b.scripts.hasPostUn {
		rpm.AddPostun(b.scripts.postUninstall)
	}

	if err := rpm.Write(w); err != nil {
		return fmt.Errorf("write package %s: %w", b.desc.Name, err)
	}
	return nil
}

// stagedToRPMFile reads a staged file's body and maps its options onto the
// archive writer's file record.
func stagedToRPMFile(staged StagedFile) (rpmpack.RPMFile, error) {
	info, err := os.Stat(staged.Path)
	if err != nil {
		return rpmpack.RPMFile{}, fmt.Errorf("stat %s: %w", staged.Path, err)
	}

	mode, modeSet := staged.Options.FileMode()
	if !modeSet {
		if info.IsDir() {
			mode = defaultDirMode
		} else {
			mode = defaultFileMode
		}
	}

	var body []byte
	// Directory entries carry no payload.
	if !info.IsDir() {
		body, err = os.ReadFile(staged.Path)
		if err != nil {
			return rpmpack.RPMFile{}, fmt.Errorf("read %s: %w", staged.Path, err)
		}
	}

	user, group := staged.Options.Owner()
	if user == "" {
		user = defaultOwner
	}
	if group == "" {
		group = defaultOwner
	}

	var ftype rpmpack.FileType
	if staged.Options.IsConfig() {
		ftype |= rpmpack.ConfigFile
	}
	if staged.Options.IsDoc() {
		ftype |= rpmpack.DocFile
	}

	return rpmpack.RPMFile{
		Name:  staged.Options.Dest(),
		Body:  body,
		Mode:  uint(mode),
		Owner: user,
		Group: group,
		MTime: uint32(info.ModTime().Unix()),
		Type:  ftype,
	}, nil
}
