// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/normat/factored"
	"github.com/katalvlaran/normat/internal/workload"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	File string
	Ops  []string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run operations on a factored matrix workload",
		Long: `Load a YAML workload, build the factored matrix over the dense
backend and run each requested operation on it.

Operations come from --op (repeatable), else from the workload's ops list,
else a default set of reductions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runEval(formatter, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "workload YAML file (required)")
	cmd.Flags().StringSliceVar(&opts.Ops, "op", nil, "operation to run (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runEval(formatter *OutputFormatter, opts *EvalOptions) error {
	w, m, err := loadAndBuild(formatter, opts.File)
	if err != nil {
		return err
	}

	ops := opts.Ops
	if len(ops) == 0 {
		ops = w.OpList()
	}

	result := newEvalResult(w.Name, m)
	for _, op := range ops {
		v, err := w.Run(m, op)
		if err != nil {
			return formatter.fail(ExitFailure, ErrCodeOpFailed, fmt.Sprintf("operation %s failed", op), err)
		}
		rendered, err := renderResult(op, v)
		if err != nil {
			return formatter.fail(ExitFailure, ErrCodeOpFailed, fmt.Sprintf("operation %s failed", op), err)
		}
		result.Results = append(result.Results, rendered)
	}

	return formatter.Success(result)
}

// loadAndBuild reads a workload and builds its factored matrix, reporting
// failures through the formatter.
func loadAndBuild(formatter *OutputFormatter, path string) (*workload.Workload, *factored.Matrix, error) {
	w, err := workload.Load(path)
	if err != nil {
		return nil, nil, formatter.fail(ExitCommandError, ErrCodeLoadFailed, "cannot load workload", err)
	}
	m, err := w.Build(factored.WithLogger(log.Logger))
	if err != nil {
		return nil, nil, formatter.fail(ExitCommandError, ErrCodeBuildFailed, "cannot build factored matrix", err)
	}
	log.Debug().Str("workload", w.Name).Str("state", m.State().String()).Msg("workload loaded")

	return w, m, nil
}
