//go:build windows

package attr

// Windows has no native POSIX mode bits; these mirror the standard POSIX
// layout (0400/0200/.../0001) so that a posix view behaves identically on
// every build target.
const (
	ModeOwnerRead  Mode = 0o400
	ModeOwnerWrite Mode = 0o200
	ModeOwnerExec  Mode = 0o100
	ModeGroupRead  Mode = 0o040
	ModeGroupWrite Mode = 0o020
	ModeGroupExec  Mode = 0o010
	ModeOtherRead  Mode = 0o004
	ModeOtherWrite Mode = 0o002
	ModeOtherExec  Mode = 0o001
)
