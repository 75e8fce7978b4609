package pathmatch

import "testing"

func TestCompileMatchesSimpleGlob(t *testing.T) {
	m, err := Compile("*.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Matches("readme.txt") {
		t.Fatal("expected readme.txt to match *.txt")
	}
	if m.Matches("readme.md") {
		t.Fatal("expected readme.md not to match *.txt")
	}
}

func TestCompileMatchesDoubleStar(t *testing.T) {
	m, err := Compile("**/*.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Matches("a/b/c.go") {
		t.Fatal("expected nested path to match **/*.go")
	}
	if !m.Matches("c.go") {
		t.Fatal("expected top-level path to match **/*.go")
	}
	if m.Matches("c.txt") {
		t.Fatal("expected non-matching extension to be rejected")
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	if _, err := Compile("["); err == nil {
		t.Fatal("expected error for invalid glob pattern")
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid pattern")
		}
	}()
	MustCompile("[")
}

func TestMustCompileReturnsWorkingMatcher(t *testing.T) {
	m := MustCompile("*.go")
	if !m.Matches("main.go") {
		t.Fatal("expected main.go to match *.go")
	}
}

func TestAcceptAllMatchesEverything(t *testing.T) {
	if !AcceptAll.Matches("") {
		t.Fatal("expected AcceptAll to match empty string")
	}
	if !AcceptAll.Matches("anything/at/all.ext") {
		t.Fatal("expected AcceptAll to match arbitrary path")
	}
}
