// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/normat/factored"
)

// OpsResult lists the operation names eval accepts.
type OpsResult struct {
	Ops []string `json:"ops"`
}

func (r OpsResult) renderText(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(r.Ops, "\n")+"\n")
	return err
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "ops",
		Short:         "List supported factored operations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(OpsResult{Ops: factored.Ops()})
		},
	}
}
