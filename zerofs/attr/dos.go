package attr

import (
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
)

// Dos implements the "dos" attribute view (readonly/hidden/archive/system
// flags), inheriting from "basic". The flags are stored as plain bools; on
// Windows builds WindowsAttributes (dos_bits_windows.go) renders them as a
// golang.org/x/sys/windows FILE_ATTRIBUTE_* bitmask.
type Dos struct{}

func (Dos) Name() string       { return "dos" }
func (Dos) Inherits() []string { return []string{"basic"} }

var dosAttrNames = []string{"readonly", "hidden", "archive", "system"}

func (Dos) Get(file *core.File, attr string) (any, bool) {
	for _, n := range dosAttrNames {
		if n == attr {
			v, ok := file.Attribute("dos", attr)
			if !ok {
				return false, true
			}
			return v, ok
		}
	}
	return nil, false
}

func (Dos) Set(file *core.File, attr string, value any, create bool) error {
	for _, n := range dosAttrNames {
		if n != attr {
			continue
		}
		b, ok := value.(bool)
		if !ok {
			return errors.Errorf("dos attribute %q must be a bool", attr)
		}
		file.SetAttribute("dos", attr, b)
		return nil
	}
	return errors.Errorf("dos view does not support writing %q", attr)
}

func (d Dos) Attributes(file *core.File) map[string]any {
	out := make(map[string]any, len(dosAttrNames))
	for _, n := range dosAttrNames {
		if v, ok := d.Get(file, n); ok {
			out[n] = v
		}
	}
	return out
}
