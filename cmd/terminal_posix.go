// +build !windows

package cmd

// HandleTerminalCompatibility relaunches the current process under a
// compatibility shim if the console it's running in needs one (see the
// Windows variant for the one case this currently handles). POSIX consoles
// need no such shim.
func HandleTerminalCompatibility() {}
