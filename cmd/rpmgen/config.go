// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rpmgen-cli/internal/config"
)

var (
	// configCmd is the parent for configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage rpmgen configuration",
	}

	// configShowCmd prints the effective configuration.
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, TitleStyle.Render("rpmgen configuration"))

			cfgDir, err := config.ConfigDir()
			if err == nil {
				fmt.Fprintln(out, SubtitleStyle.Render("config dir: ")+cfgDir)
			}

			fmt.Fprintf(out, "  output_dir   = %q\n", appConfig.OutputDir)
			fmt.Fprintf(out, "  compression  = %q\n", appConfig.Compression)
			fmt.Fprintf(out, "  target_arch  = %q\n", appConfig.TargetArch)
			fmt.Fprintf(out, "  verbose      = %t\n", appConfig.Verbose)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}
