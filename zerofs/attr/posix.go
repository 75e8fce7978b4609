package attr

import (
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
)

// Mode is a POSIX permission-bits value, laid out the same way the host
// platform's stat mode bits are: the concrete
// bit values come from golang.org/x/sys/unix or golang.org/x/sys/windows
// depending on build target, see posix_bits_*.go.
type Mode uint32

const (
	DefaultFileMode Mode = ModeOwnerRead | ModeOwnerWrite | ModeGroupRead | ModeOtherRead
	DefaultDirMode  Mode = DefaultFileMode | ModeOwnerExec | ModeGroupExec | ModeOtherExec
)

// Posix implements the "posix" attribute view (permission bits), which
// inherits from "basic" and "owner".
type Posix struct{}

func (Posix) Name() string       { return "posix" }
func (Posix) Inherits() []string { return []string{"basic", "owner"} }

func (Posix) Get(file *core.File, attr string) (any, bool) {
	if attr != "permissions" {
		return nil, false
	}
	v, ok := file.Attribute("posix", "permissions")
	if !ok {
		def := DefaultFileMode
		if file.Kind() == core.KindDirectory {
			def = DefaultDirMode
		}
		return def, true
	}
	return v, true
}

func (Posix) Set(file *core.File, attr string, value any, create bool) error {
	if attr != "permissions" {
		return errors.Errorf("posix view does not support writing %q", attr)
	}
	mode, ok := value.(Mode)
	if !ok {
		return errors.New("permissions value must be a posix.Mode")
	}
	file.SetAttribute("posix", "permissions", mode)
	return nil
}

func (p Posix) Attributes(file *core.File) map[string]any {
	out := make(map[string]any)
	if v, ok := p.Get(file, "permissions"); ok {
		out["permissions"] = v
	}
	return out
}
