package attr

import (
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
)

// Principal identifies a user or group principal; its Name is a display
// string, mirroring how a real principal lookup would be represented to callers.
type Principal struct {
	Name string
}

// Owner implements the "owner" attribute view: owner and group principals,
// shared across posix/acl providers via inheritance.
type Owner struct{}

func (Owner) Name() string       { return "owner" }
func (Owner) Inherits() []string { return nil }

func (Owner) Get(file *core.File, attr string) (any, bool) {
	switch attr {
	case "owner", "group":
		v, ok := file.Attribute("owner", attr)
		if !ok {
			return Principal{Name: "root"}, true
		}
		return v, true
	}
	return nil, false
}

func (Owner) Set(file *core.File, attr string, value any, create bool) error {
	if attr != "owner" && attr != "group" {
		return errors.Errorf("owner view does not support writing %q", attr)
	}
	p, ok := value.(Principal)
	if !ok {
		return errors.New("owner/group value must be a Principal")
	}
	file.SetAttribute("owner", attr, p)
	return nil
}

func (o Owner) Attributes(file *core.File) map[string]any {
	out := make(map[string]any, 2)
	for _, attr := range []string{"owner", "group"} {
		if v, ok := o.Get(file, attr); ok {
			out[attr] = v
		}
	}
	return out
}
