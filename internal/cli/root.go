// SPDX-License-Identifier: MIT

// Package cli implements the normat command line: evaluating YAML workloads
// of factored matrices over the dense backend.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/normat/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "json" | "text"
	LogLevel   string
	PrettyLogs bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the normat CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "normat",
		Short: "normat - factored matrix algebra",
		Long: `Evaluate linear algebra over factored (normalized) matrices
M = [S | K_0·R_0 | ... | K_{r-1}·R_{r-1}] without materializing M.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logging.New(logging.Config{
				Level:  opts.LogLevel,
				Pretty: opts.PrettyLogs,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", logging.DefaultConfig().Level, "log level (debug|info|warn|error|disabled)")
	cmd.PersistentFlags().BoolVar(&opts.PrettyLogs, "pretty-logs", false, "human-readable logs on stderr")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewMaterializeCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
