//go:build !windows

package cmd

const (
	// statusLineFormat truncates and space-pads status text to exactly 80
	// columns before a leading carriage return: this overwrites whatever the
	// previous line printed, keeps the cursor from jumping around, and stays
	// within the 80-column minimum a VT100-compatible terminal guarantees.
	statusLineFormat = "\r%-80.80s"
	// statusLineClearFormat blanks the status line and returns the cursor to
	// column zero.
	statusLineClearFormat = statusLineFormat + "\r"
)
