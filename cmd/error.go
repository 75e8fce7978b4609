package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Warning prints a yellow warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error without exiting.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints err via Error and exits the process with a non-zero status.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
