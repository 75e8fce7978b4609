// Package pathsvc implements the Path value type and PathService:
// parsing, comparison, hashing, URI translation, and the
// pure path algebra (resolve/relativize/normalize/startsWith/endsWith).
package pathsvc

import (
	"hash/fnv"

	"github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathtype"
)

// Path is an immutable tuple (root, names). It is absolute iff root is
// non-nil. Paths are value objects: every algebra operation below returns a
// new Path.
type Path struct {
	service *Service
	root    *name.Name
	names   []name.Name
}

// Service returns the PathService this path was produced by.
func (p Path) Service() *Service { return p.service }

// IsAbsolute reports whether the path has a root.
func (p Path) IsAbsolute() bool { return p.root != nil }

// Names returns the path's name sequence. Callers must not mutate it.
func (p Path) Names() []name.Name { return p.names }

// Root returns the root name and true if the path is absolute.
func (p Path) Root() (name.Name, bool) {
	if p.root == nil {
		return name.Name{}, false
	}
	return *p.root, true
}

// IsEmpty reports whether this is the canonical empty relative path: no
// root, one name whose display is "".
func (p Path) IsEmpty() bool {
	return p.root == nil && len(p.names) == 1 && p.names[0] == name.EMPTY
}

// GetRoot returns the root-only path if this path is absolute, or the zero
// Path and false otherwise.
func (p Path) GetRoot() (Path, bool) {
	if p.root == nil {
		return Path{}, false
	}
	return Path{service: p.service, root: p.root}, true
}

// GetParent returns p's parent path, or false if p has none.
func (p Path) GetParent() (Path, bool) {
	if len(p.names) == 0 {
		return Path{}, false
	}
	if len(p.names) == 1 {
		if p.root == nil {
			return Path{}, false
		}
		return Path{service: p.service, root: p.root}, true
	}
	return Path{service: p.service, root: p.root, names: append([]name.Name{}, p.names[:len(p.names)-1]...)}, true
}

// startsWithNames reports whether self.names has other.names as a prefix.
func startsWithNames(self, other []name.Name, eq func(a, b name.Name) bool) bool {
	if len(other) > len(self) {
		return false
	}
	for i := range other {
		if !eq(self[i], other[i]) {
			return false
		}
	}
	return true
}

// StartsWith reports whether p begins with other's root and names.
func (p Path) StartsWith(other Path) bool {
	if p.service != other.service {
		return false
	}
	if (p.root == nil) != (other.root == nil) {
		return false
	}
	if p.root != nil && !p.service.nameEqual(*p.root, *other.root) {
		return false
	}
	return startsWithNames(p.names, other.names, p.service.nameEqual)
}

// EndsWith reports whether p ends with other's root (if any) and names.
func (p Path) EndsWith(other Path) bool {
	if other.root != nil {
		return p.service.Compare(p, other) == 0
	}
	if len(other.names) > len(p.names) {
		return false
	}
	offset := len(p.names) - len(other.names)
	for i, n := range other.names {
		if !p.service.nameEqual(p.names[offset+i], n) {
			return false
		}
	}
	return true
}

// Normalize collapses "." segments and resolves ".." against preceding
// names where possible.
func (p Path) Normalize() Path {
	result := make([]name.Name, 0, len(p.names))
	for _, n := range p.names {
		switch {
		case n.IsSelf():
			continue
		case n.IsParent():
			if len(result) > 0 && !result[len(result)-1].IsParent() {
				result = result[:len(result)-1]
				continue
			}
			if p.root != nil {
				// Absolute: drop the extra ".." rather than popping above root.
				continue
			}
			result = append(result, n)
		default:
			result = append(result, n)
		}
	}
	if len(result) == 0 {
		if p.root != nil {
			return Path{service: p.service, root: p.root}
		}
		return Path{service: p.service, names: []name.Name{name.EMPTY}}
	}
	return Path{service: p.service, root: p.root, names: result}
}

// Resolve resolves other against p: an absolute other replaces p outright,
// otherwise other's names are appended to p's.
func (p Path) Resolve(other Path) Path {
	if p.IsEmpty() || other.root != nil {
		return other
	}
	if other.IsEmpty() {
		return p
	}
	names := append(append([]name.Name{}, p.names...), other.names...)
	return Path{service: p.service, root: p.root, names: names}
}

// ResolveSibling resolves other against p's parent.
func (p Path) ResolveSibling(other Path) Path {
	if parent, ok := p.GetParent(); ok {
		return parent.Resolve(other)
	}
	return other
}

// Relativize computes a relative path from p to other. Both paths must
// share the same root (or both be relative with no root).
func (p Path) Relativize(other Path) (Path, error) {
	if (p.root == nil) != (other.root == nil) {
		return Path{}, errors.New("paths do not share a root")
	}
	if p.root != nil && !p.service.nameEqual(*p.root, *other.root) {
		return Path{}, errors.New("paths do not share a root")
	}
	i := 0
	for i < len(p.names) && i < len(other.names) && p.service.nameEqual(p.names[i], other.names[i]) {
		i++
	}
	var result []name.Name
	for j := i; j < len(p.names); j++ {
		result = append(result, name.PARENT)
	}
	result = append(result, other.names[i:]...)
	if len(result) == 0 {
		result = []name.Name{name.EMPTY}
	}
	return Path{service: p.service, names: result}, nil
}

// String renders the path using its PathType's join grammar.
func (p Path) String() string {
	rootStr := ""
	if p.root != nil {
		rootStr = p.root.Display()
	}
	names := make([]string, 0, len(p.names))
	for _, n := range p.names {
		if n.IsEmpty() {
			continue
		}
		names = append(names, n.Display())
	}
	return p.service.pathType.JoinPath(rootStr, names)
}

// Hash combines a file-system-level hash with per-name hashes using the
// service's configured equality form.
func (p Path) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{p.service.pathType.Separator()})
	if p.root != nil {
		h.Write([]byte(p.service.nameForm(*p.root)))
	}
	for _, n := range p.names {
		h.Write([]byte{0})
		h.Write([]byte(p.service.nameForm(n)))
	}
	return h.Sum64()
}

// Equal reports structural equality under the owning service's configured
// equality form.
func (p Path) Equal(other Path) bool {
	return p.service == other.service && p.service.Compare(p, other) == 0
}
