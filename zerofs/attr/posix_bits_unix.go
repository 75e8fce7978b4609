//go:build !windows

package attr

import "golang.org/x/sys/unix"

// Permission bit constants sourced from golang.org/x/sys/unix's stat mode
// layout.
const (
	ModeOwnerRead  Mode = unix.S_IRUSR
	ModeOwnerWrite Mode = unix.S_IWUSR
	ModeOwnerExec  Mode = unix.S_IXUSR
	ModeGroupRead  Mode = unix.S_IRGRP
	ModeGroupWrite Mode = unix.S_IWGRP
	ModeGroupExec  Mode = unix.S_IXGRP
	ModeOtherRead  Mode = unix.S_IROTH
	ModeOtherWrite Mode = unix.S_IWOTH
	ModeOtherExec  Mode = unix.S_IXOTH
)
