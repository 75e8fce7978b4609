package cmd

const (
	// statusLineFormat truncates and space-pads status text to 79 columns
	// before a leading carriage return. 79, not 80: on Windows a carriage
	// return wipe doesn't take effect once the cursor has already printed a
	// character in the console's last column, so the content column is kept
	// one short of the 80-column default console width.
	statusLineFormat = "\r%-79.79s"
	// statusLineClearFormat blanks the status line and returns the cursor to
	// column zero.
	statusLineClearFormat = statusLineFormat + "\r"
)
