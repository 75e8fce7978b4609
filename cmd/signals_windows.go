package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals lists the signals that request a clean shutdown of a
// long-running zerofsctl command such as watch.
var TerminationSignals = []os.Signal{
	// SIGINT is the only POSIX signal Go supports on Windows, and Ctrl-C is
	// the only termination request that matters there anyway; it's not a
	// native console signal but an emulation Go performs for console apps.
	syscall.SIGINT,
}
