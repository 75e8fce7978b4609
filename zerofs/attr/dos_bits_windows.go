//go:build windows

package attr

import "golang.org/x/sys/windows"

// WindowsAttributes renders the dos view's boolean flags as a Windows
// FILE_ATTRIBUTE_* bitmask, for hosts that bridge a zerofs file out to a
// real Windows API surface.
func WindowsAttributes(readonly, hidden, archive, system bool) uint32 {
	var attrs uint32
	if readonly {
		attrs |= windows.FILE_ATTRIBUTE_READONLY
	}
	if hidden {
		attrs |= windows.FILE_ATTRIBUTE_HIDDEN
	}
	if archive {
		attrs |= windows.FILE_ATTRIBUTE_ARCHIVE
	}
	if system {
		attrs |= windows.FILE_ATTRIBUTE_SYSTEM
	}
	return attrs
}
