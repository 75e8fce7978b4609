package attr

import (
	"github.com/zerofs-dev/zerofs/core"
)

// User implements the "user" attribute view: arbitrary caller-defined
// name/byte-slice pairs. Unlike the other providers it accepts any attribute
// name, since user attributes are not a fixed set.
type User struct{}

func (User) Name() string       { return "user" }
func (User) Inherits() []string { return nil }

func (User) Get(file *core.File, attr string) (any, bool) {
	return file.Attribute("user", attr)
}

func (User) Set(file *core.File, attr string, value any, create bool) error {
	file.SetAttribute("user", attr, value)
	return nil
}

func (User) Attributes(file *core.File) map[string]any {
	return file.AttributeView("user")
}
