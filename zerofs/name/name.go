// Package name implements the immutable file-name value used throughout
// zerofs: a (display, canonical) pair, where canonical is derived from
// the raw string via a configurable chain of normalizations and is what lookup
// equality is actually computed on.
package name

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalization identifies one step in a Name's canonicalization chain.
type Normalization int

const (
	// NormNFC applies Unicode NFC (composed) normalization.
	NormNFC Normalization = iota
	// NormNFD applies Unicode NFD (decomposed) normalization.
	NormNFD
	// NormCaseFold lowercases using Unicode-aware case folding, the
	// normalization a case-insensitive-for-equality configuration installs on the canonical chain.
	NormCaseFold
)

var caseFolder = cases.Fold()

func apply(steps []Normalization, s string) string {
	for _, step := range steps {
		switch step {
		case NormNFC:
			s = norm.NFC.String(s)
		case NormNFD:
			s = norm.NFD.String(s)
		case NormCaseFold:
			s = caseFolder.String(s)
		}
	}
	return s
}

// Name is an immutable display/canonical pair. Two names are equal for
// lookup purposes iff their canonical forms are equal.
type Name struct {
	display   string
	canonical string
}

// SELF and PARENT are globally shared sentinel names, created regardless
// of any configured normalization chain.
var (
	SELF   = Name{display: ".", canonical: "."}
	PARENT = Name{display: "..", canonical: ".."}
	// EMPTY is the name used by the canonical empty relative path.
	EMPTY = Name{display: "", canonical: ""}
)

// New constructs a Name from a raw string, applying the given display and
// canonical normalization chains. The reserved strings "." and ".." always
// produce the shared SELF/PARENT sentinels regardless of normalization, and
// "" always produces EMPTY.
func New(raw string, displayNorm, canonicalNorm []Normalization) Name {
	switch raw {
	case ".":
		return SELF
	case "..":
		return PARENT
	case "":
		return EMPTY
	}
	return Name{
		display:   apply(displayNorm, raw),
		canonical: apply(canonicalNorm, raw),
	}
}

// Display returns the name's display form, used by String and (absent a
// case-insensitive configuration) by path comparison.
func (n Name) Display() string { return n.display }

// Canonical returns the name's canonical form, used by lookup equality and,
// under a case-insensitive-for-equality configuration, by path comparison.
func (n Name) Canonical() string { return n.canonical }

// String returns the display form.
func (n Name) String() string { return n.display }

// IsSelf reports whether this name is the "." sentinel.
func (n Name) IsSelf() bool { return n == SELF }

// IsParent reports whether this name is the ".." sentinel.
func (n Name) IsParent() bool { return n == PARENT }

// IsEmpty reports whether this name is the empty-path sentinel.
func (n Name) IsEmpty() bool { return n == EMPTY }

// EqualCanonical reports whether two names have equal canonical forms.
func (n Name) EqualCanonical(o Name) bool { return n.canonical == o.canonical }

// EqualDisplay reports whether two names have equal display forms.
func (n Name) EqualDisplay(o Name) bool { return n.display == o.display }

// CompareDisplay performs a byte-wise comparison of display forms, used by
// PathService.compare when the configuration is not canonical-equality.
func CompareDisplay(a, b Name) int { return strings.Compare(a.display, b.display) }

// CompareCanonical performs a byte-wise comparison of canonical forms.
func CompareCanonical(a, b Name) int { return strings.Compare(a.canonical, b.canonical) }
