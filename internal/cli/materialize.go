// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

// NewMaterializeCommand creates the materialize command.
func NewMaterializeCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Print the explicit matrix a workload denotes",
		Long: `Assemble the dense block composition of a workload's factored matrix.
Intended for small inputs and for checking factored results by hand.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runMaterialize(formatter, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "workload YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runMaterialize(formatter *OutputFormatter, path string) error {
	w, m, err := loadAndBuild(formatter, path)
	if err != nil {
		return err
	}

	const op = "materialize"
	full, err := m.Materialize()
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeOpFailed, "materialize failed", err)
	}
	rendered, err := renderResult(op, full)
	if err != nil {
		return formatter.fail(ExitFailure, ErrCodeOpFailed, "materialize failed", err)
	}

	result := newEvalResult(w.Name, m)
	result.Results = []OpResult{rendered}

	return formatter.Success(result)
}
