// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"rpmgen-cli/internal/issue"
	"rpmgen-cli/internal/scriptcheck"
	"rpmgen-cli/pkg/manifest"
	"rpmgen-cli/pkg/metadata"
	"rpmgen-cli/pkg/rpmbuild"
)

// ManifestFileName is the manifest looked up when -p points at a directory.
const ManifestFileName = "Cargo.toml"

var (
	// buildPackagePath is the -p flag: manifest file or project directory.
	buildPackagePath string
	// buildOutputPath is the -o flag: output .rpm file or directory.
	buildOutputPath string
	// buildTargetArch is the -a flag: explicit architecture override.
	buildTargetArch string
	// buildCompression is the --payload-compress flag.
	buildCompression string

	// buildCmd builds an RPM from the package manifest.
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build an RPM from the package manifest",
		Long: `Build a binary RPM from the package manifest.

The manifest's [package.metadata.generate-rpm] block supplies the package
attributes and the asset list. Package scalars missing from the block fall
back to the corresponding [package] fields. The finished package is written
as <name>-<version>-<release>.<arch>.rpm under the output directory.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&buildPackagePath, "package", "p", ".", "manifest file or project directory")
	buildCmd.Flags().StringVarP(&buildOutputPath, "output", "o", "", "output file or directory (default: configured output dir)")
	buildCmd.Flags().StringVarP(&buildTargetArch, "arch", "a", "", "target architecture (default: host architecture)")
	buildCmd.Flags().StringVar(&buildCompression, "payload-compress", "", "payload compression: gzip, zstd or xz (default: gzip)")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	manifestPath := resolveManifestPath(buildPackagePath)

	log.Debug("loading manifest", "path", manifestPath)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(manifestPath).
			WithSuggestion("Pass -p to point at the manifest file or project directory").
			Wrap(err).
			BuildError()
	}

	arch := buildTargetArch
	if arch == "" {
		arch = appConfig.TargetArch
	}
	compression := buildCompression
	if compression == "" {
		compression = appConfig.Compression
	}

	builder, err := metadata.CreateBuilder(m, metadata.Options{
		TargetArch:  arch,
		Compression: compression,
	})
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("resolve package metadata").
			WithResource(manifestPath).
			WithSuggestion("Check the [package.metadata.generate-rpm] block against the reported field").
			Wrap(err).
			BuildError()
	}

	warnOnScriptletSyntax(builder)

	outPath := resolveOutputPath(buildOutputPath, appConfig.OutputDir, builder.Descriptor())
	log.Debug("writing package", "path", outPath, "files", len(builder.Files()))

	out, err := os.Create(outPath)
	if err != nil {
		return issue.WrapWithOperation(err, "create output file")
	}
	if err := builder.Finalize(out); err != nil {
		out.Close()
		os.Remove(outPath) // never leave a truncated package behind
		return issue.NewErrorContext().
			WithOperation("write package").
			WithResource(outPath).
			Wrap(err).
			BuildError()
	}
	if err := out.Close(); err != nil {
		return issue.WrapWithOperation(err, "close output file")
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+outPath)
	return nil
}

// warnOnScriptletSyntax runs the advisory shell-syntax check over every
// embedded scriptlet. Findings never fail the build; the scriptlets are
// packaged verbatim either way.
func warnOnScriptletSyntax(builder *rpmbuild.Builder) {
	scriptlets := builder.Scriptlets()
	for _, tag := range []string{"preinstall", "postinstall", "preuninstall", "postuninstall"} {
		body, ok := scriptlets[tag]
		if !ok {
			continue
		}
		if err := scriptcheck.Check(tag, body); err != nil {
			log.Warn("scriptlet may not parse as shell", "tag", tag, "err", err)
		}
	}
}

// resolveManifestPath maps the -p flag onto a manifest file path: a
// directory gets the default manifest name appended.
func resolveManifestPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, ManifestFileName)
	}
	return path
}

// resolveOutputPath maps the -o flag (or the configured output directory)
// onto the final package path. An explicit .rpm path wins; anything else is
// treated as a directory receiving the conventional file name.
func resolveOutputPath(flagValue, configuredDir string, desc rpmbuild.Descriptor) string {
	if strings.HasSuffix(flagValue, ".rpm") {
		return flagValue
	}
	dir := flagValue
	if dir == "" {
		dir = configuredDir
	}
	return filepath.Join(dir, packageFileName(desc))
}

// packageFileName renders the conventional <name>-<version>-<release>.<arch>.rpm name.
func packageFileName(desc rpmbuild.Descriptor) string {
	release := "1"
	if desc.HasRelease {
		release = strconv.FormatUint(uint64(desc.Release), 10)
	}
	return fmt.Sprintf("%s-%s-%s.%s.rpm", desc.Name, desc.Version, release, desc.Arch)
}
