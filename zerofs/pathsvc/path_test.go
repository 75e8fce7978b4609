package pathsvc

import "testing"

func mustParse(t *testing.T, s *Service, first string, more ...string) Path {
	t.Helper()
	p, err := s.ParsePath(first, more...)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", first, err)
	}
	return p
}

func TestGetParentOfMultiNamePath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b/c")
	parent, ok := p.GetParent()
	if !ok {
		t.Fatal("expected parent")
	}
	if got := parent.String(); got != "/a/b" {
		t.Fatalf("expected /a/b, got %q", got)
	}
}

func TestGetParentOfRootOnlyPathFails(t *testing.T) {
	s := newUnixService()
	root, _ := s.ParsePath("/")
	if _, ok := root.GetParent(); ok {
		t.Fatal("expected no parent for root-only path")
	}
}

func TestGetRootOnRelativePathFails(t *testing.T) {
	s := newUnixService()
	rel := mustParse(t, s, "a/b")
	if _, ok := rel.GetRoot(); ok {
		t.Fatal("expected no root for relative path")
	}
}

func TestStartsWithAndEndsWith(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b/c")
	prefix := mustParse(t, s, "/a/b")
	other := mustParse(t, s, "/a/x")
	suffix := mustParse(t, s, "b/c")

	if !p.StartsWith(prefix) {
		t.Fatal("expected p to start with prefix")
	}
	if p.StartsWith(other) {
		t.Fatal("expected p not to start with unrelated path")
	}
	if !p.EndsWith(suffix) {
		t.Fatal("expected p to end with suffix")
	}
}

func TestNormalizeCollapsesDotAndDotDot(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/./b/../c")
	if got := p.Normalize().String(); got != "/a/c" {
		t.Fatalf("expected /a/c, got %q", got)
	}
}

func TestNormalizeDropsLeadingDotDotOnAbsolutePath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/../a")
	if got := p.Normalize().String(); got != "/a" {
		t.Fatalf("expected /a, got %q", got)
	}
}

func TestNormalizeKeepsLeadingDotDotOnRelativePath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "../a")
	if got := p.Normalize().String(); got != "../a" {
		t.Fatalf("expected ../a, got %q", got)
	}
}

func TestResolveAbsoluteOtherReplacesPath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b")
	other := mustParse(t, s, "/x/y")
	if got := p.Resolve(other).String(); got != "/x/y" {
		t.Fatalf("expected /x/y, got %q", got)
	}
}

func TestResolveRelativeOtherAppends(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b")
	other := mustParse(t, s, "c/d")
	if got := p.Resolve(other).String(); got != "/a/b/c/d" {
		t.Fatalf("expected /a/b/c/d, got %q", got)
	}
}

func TestResolveSiblingReplacesLastName(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b")
	other := mustParse(t, s, "x")
	if got := p.ResolveSibling(other).String(); got != "/a/x" {
		t.Fatalf("expected /a/x, got %q", got)
	}
}

func TestRelativizeComputesRelativePath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "/a/b/c")
	other := mustParse(t, s, "/a/b/d/e")
	rel, err := p.Relativize(other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rel.String(); got != "../d/e" {
		t.Fatalf("expected ../d/e, got %q", got)
	}
}

func TestRelativizeRejectsDifferentRoots(t *testing.T) {
	s := newUnixService()
	abs := mustParse(t, s, "/a/b")
	rel := mustParse(t, s, "a/b")
	if _, err := abs.Relativize(rel); err == nil {
		t.Fatal("expected error relativizing paths with different root-ness")
	}
}

func TestHashAndEqualAgree(t *testing.T) {
	s := newUnixService()
	a := mustParse(t, s, "/a/b")
	b := mustParse(t, s, "/a/b")
	if !a.Equal(b) {
		t.Fatal("expected equal paths")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("expected equal paths to hash identically")
	}
}

func TestIsEmptyForEmptyRelativePath(t *testing.T) {
	s := newUnixService()
	p := mustParse(t, s, "")
	if !p.IsEmpty() {
		t.Fatal("expected empty path")
	}
	if p.IsAbsolute() {
		t.Fatal("expected empty path to be relative")
	}
}
