// Package pathmatch implements glob-to-matcher translation as an external
// contract. It backs PathMatcher, used by directory-stream filters.
package pathmatch

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Matcher reports whether a given display-form name or relative path
// string matches a compiled pattern.
type Matcher interface {
	Matches(s string) bool
}

type globMatcher struct {
	pattern string
}

func (g globMatcher) Matches(s string) bool {
	ok, err := doublestar.Match(g.pattern, s)
	return err == nil && ok
}

// Compile translates a glob pattern ("*.txt", "**/*.go") into a Matcher
// using doublestar's glob grammar.
func Compile(pattern string) (Matcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Errorf("invalid glob pattern %q", pattern)
	}
	return globMatcher{pattern: pattern}, nil
}

// MustCompile is like Compile but panics on an invalid pattern; intended
// for compile-time constant patterns.
func MustCompile(pattern string) Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// AcceptAll is a Matcher that accepts every name, used as the default
// directory-stream filter.
var AcceptAll Matcher = acceptAllMatcher{}

type acceptAllMatcher struct{}

func (acceptAllMatcher) Matches(string) bool { return true }
