package attr

import (
	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
)

// ACL is an opaque access-control-list value; applyPlatformACL is the
// platform-specific hook run when one is set (see acl_windows.go /
// acl_other.go).
type ACL struct {
	Entries []string
}

// Acl implements the "acl" attribute view, inheriting from "owner". Its
// concrete backend type differs by build target (hectane/go-acl on
// Windows; a portable stub elsewhere) but the view's contract does not.
type Acl struct{}

func (Acl) Name() string       { return "acl" }
func (Acl) Inherits() []string { return []string{"owner"} }

func (Acl) Get(file *core.File, attr string) (any, bool) {
	if attr != "acl" {
		return nil, false
	}
	v, ok := file.Attribute("acl", "acl")
	if !ok {
		return ACL{}, true
	}
	return v, true
}

func (Acl) Set(file *core.File, attr string, value any, create bool) error {
	if attr != "acl" {
		return errors.Errorf("acl view does not support writing %q", attr)
	}
	acl, ok := value.(ACL)
	if !ok {
		return errors.New("acl value must be an ACL")
	}
	if err := applyPlatformACL(acl); err != nil {
		return errors.Wrap(err, "unable to apply platform ACL")
	}
	file.SetAttribute("acl", "acl", acl)
	return nil
}

func (a Acl) Attributes(file *core.File) map[string]any {
	out := make(map[string]any, 1)
	if v, ok := a.Get(file, "acl"); ok {
		out["acl"] = v
	}
	return out
}
