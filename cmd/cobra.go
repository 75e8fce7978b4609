package cmd

import (
	"github.com/spf13/cobra"
)

// Mainify adapts a RunE-style function (one returning an error) into the
// void-returning signature cobra.Command.Run expects, routing any error
// through Fatal. Using RunE directly would let Cobra call os.Exit before
// the command's own deferred cleanup runs.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}
