package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// PerformingShellCompletion reports whether the process was invoked as one
// of Cobra's hidden shell-completion subcommands rather than as ordinary
// command-line use.
var PerformingShellCompletion bool

func init() {
	PerformingShellCompletion = len(os.Args) > 1 &&
		(os.Args[1] == cobra.ShellCompRequestCmd ||
			os.Args[1] == cobra.ShellCompNoDescRequestCmd)
}
