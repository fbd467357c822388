// Package commands wires the zuulint CLI: flag and config resolution, the
// lint pipeline (discover, parse, schema-validate, consistency checks)
// and the final report.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the zuulint root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("ZUULINT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var opts lintOptions

	cmd := &cobra.Command{
		Use:           "zuulint [flags] file...",
		Short:         "zuulint - a linter for Zuul CI configuration files",
		Long:          "zuulint validates Zuul configuration files against a JSON schema and\nchecks the whole file set for duplicate jobs, dangling nodeset and secret\nreferences, missing playbooks and conflicting semaphore declarations.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "path to Zuul schema file (default: embedded schema)")
	cmd.Flags().BoolVarP(&opts.checkPlaybookPaths, "check-playbook-paths", "c", false, "check that playbook paths are valid")
	cmd.Flags().BoolVarP(&opts.ignoreWarnings, "ignore-warnings", "i", false, "ignore warnings")
	cmd.Flags().BoolVar(&opts.warningsAsErrors, "warnings-as-errors", false, "handle warnings as errors")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "doublestar pattern of files to skip (repeatable)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to config file (default: .zuulint.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of zuulint",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "zuulint version %s\n", version)
		},
	})

	return cmd
}
