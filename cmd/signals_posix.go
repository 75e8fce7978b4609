// +build !windows

package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals lists the signals that request a clean shutdown of a
// long-running zerofsctl command such as watch.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
