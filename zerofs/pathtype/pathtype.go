// Package pathtype implements the PathType contract: given
// a raw path string, split it into an optional root string and an ordered
// list of name strings; the reverse operation joins them back; and
// translation to/from a hierarchical URI path segment.
package pathtype

import (
	"strings"

	"github.com/pkg/errors"
)

// Type identifies which path grammar a PathType implements.
type Type int

const (
	Unix Type = iota
	Windows
)

// PathType is the contract each path grammar must satisfy.
type PathType interface {
	// Type reports which grammar this implementation follows.
	Type() Type
	// Separator is the grammar's preferred path separator.
	Separator() byte
	// ParsePath splits a raw path string into an optional root string (empty
	// if the path is relative) and an ordered list of name strings.
	ParsePath(raw string) (root string, names []string, err error)
	// JoinPath renders a (root, names) pair back to a string.
	JoinPath(root string, names []string) string
	// IsValidName reports whether s is a legal single path component.
	IsValidName(s string) bool
	// ToURIPath renders a (root, names) pair as the path segment of a URI.
	ToURIPath(root string, names []string) string
}

// unixPathType implements the POSIX path grammar: '/' separated, a single
// root "/", NUL bytes rejected.
type unixPathType struct{}

// UnixType is the shared Unix PathType instance.
var UnixType PathType = unixPathType{}

func (unixPathType) Type() Type      { return Unix }
func (unixPathType) Separator() byte { return '/' }

func (unixPathType) ParsePath(raw string) (string, []string, error) {
	if strings.IndexByte(raw, 0) != -1 {
		return "", nil, errors.New("path contains NUL character")
	}
	root := ""
	rest := raw
	if strings.HasPrefix(raw, "/") {
		root = "/"
		rest = strings.TrimPrefix(raw, "/")
	}
	var names []string
	for _, part := range strings.Split(rest, "/") {
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return root, names, nil
}

func (unixPathType) JoinPath(root string, names []string) string {
	if root == "/" {
		return "/" + strings.Join(names, "/")
	}
	return strings.Join(names, "/")
}

func (unixPathType) IsValidName(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/\x00")
}

func (u unixPathType) ToURIPath(root string, names []string) string {
	return u.JoinPath(root, names)
}

// windowsPathType implements a Windows-ish grammar: drive letters
// ("C:\"), UNC roots ("\\server\share\"), and both '\\' and '/' accepted
// as separators.
type windowsPathType struct{}

// WindowsType is the shared Windows PathType instance.
var WindowsType PathType = windowsPathType{}

func (windowsPathType) Type() Type      { return Windows }
func (windowsPathType) Separator() byte { return '\\' }

func isSeparator(b byte) bool { return b == '\\' || b == '/' }

func (windowsPathType) ParsePath(raw string) (string, []string, error) {
	root := ""
	rest := raw

	switch {
	case len(raw) >= 2 && raw[1] == ':' && isAsciiLetter(raw[0]):
		// Drive letter root, e.g. "C:\Users" or bare "C:".
		root = strings.ToUpper(raw[:2]) + `\`
		rest = raw[2:]
		if len(rest) > 0 && isSeparator(rest[0]) {
			rest = rest[1:]
		}
	case len(raw) >= 2 && isSeparator(raw[0]) && isSeparator(raw[1]):
		// UNC root, e.g. "\\server\share\path".
		trimmed := raw[2:]
		var parts []string
		for _, p := range splitOnSeparators(trimmed) {
			if p != "" {
				parts = append(parts, p)
			}
			if len(parts) == 2 {
				break
			}
		}
		if len(parts) < 2 {
			return "", nil, errors.New("incomplete UNC root")
		}
		root = `\\` + parts[0] + `\` + parts[1] + `\`
		idx := strings.Index(trimmed, parts[0])
		idx += len(parts[0])
		idx = strings.Index(trimmed[idx:], parts[1]) + idx + len(parts[1])
		rest = trimmed[idx:]
		if len(rest) > 0 && isSeparator(rest[0]) {
			rest = rest[1:]
		}
	}

	var names []string
	for _, part := range splitOnSeparators(rest) {
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return root, names, nil
}

func splitOnSeparators(s string) []string {
	return strings.FieldsFunc(s, isSeparator)
}

func isAsciiLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (windowsPathType) JoinPath(root string, names []string) string {
	var b strings.Builder
	b.WriteString(root)
	for i, n := range names {
		if i > 0 {
			b.WriteByte('\\')
		}
		b.WriteString(n)
	}
	return b.String()
}

func (windowsPathType) IsValidName(s string) bool {
	if s == "" || strings.ContainsAny(s, `\/:*?"<>|`) {
		return false
	}
	return true
}

func (w windowsPathType) ToURIPath(root string, names []string) string {
	r := root
	r = strings.ReplaceAll(r, `\`, "/")
	var b strings.Builder
	b.WriteString(r)
	for i, n := range names {
		if i > 0 || r == "" {
			b.WriteByte('/')
		}
		b.WriteString(n)
	}
	return b.String()
}

// For finds the shared PathType instance for a Type value.
func For(t Type) PathType {
	if t == Windows {
		return WindowsType
	}
	return UnixType
}
