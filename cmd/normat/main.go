// SPDX-License-Identifier: MIT

// Command normat evaluates factored matrix workloads.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/normat/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// flag and usage errors have not been reported yet
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
