package pathtype

import (
	"reflect"
	"testing"
)

func TestUnixParsePathAbsolute(t *testing.T) {
	root, names, err := UnixType.ParsePath("/a/b/c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "/" {
		t.Fatalf("expected root %q, got %q", "/", root)
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestUnixParsePathRelative(t *testing.T) {
	root, names, err := UnixType.ParsePath("a/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "" {
		t.Fatalf("expected empty root, got %q", root)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestUnixParsePathCollapsesRepeatedSeparators(t *testing.T) {
	_, names, err := UnixType.ParsePath("/a//b///c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestUnixParsePathRejectsNUL(t *testing.T) {
	if _, _, err := UnixType.ParsePath("a\x00b"); err == nil {
		t.Fatal("expected error for NUL byte")
	}
}

func TestUnixJoinPathRoundTrip(t *testing.T) {
	root, names, err := UnixType.ParsePath("/a/b/c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := UnixType.JoinPath(root, names); got != "/a/b/c" {
		t.Fatalf("expected /a/b/c, got %q", got)
	}
	if got := UnixType.JoinPath("", []string{"x", "y"}); got != "x/y" {
		t.Fatalf("expected x/y, got %q", got)
	}
}

func TestUnixIsValidName(t *testing.T) {
	if !UnixType.IsValidName("file.txt") {
		t.Fatal("expected valid name to be accepted")
	}
	if UnixType.IsValidName("") {
		t.Fatal("empty name should be invalid")
	}
	if UnixType.IsValidName("a/b") {
		t.Fatal("name containing separator should be invalid")
	}
	if UnixType.IsValidName("a\x00b") {
		t.Fatal("name containing NUL should be invalid")
	}
}

func TestUnixToURIPath(t *testing.T) {
	if got := UnixType.ToURIPath("/", []string{"a", "b"}); got != "/a/b" {
		t.Fatalf("expected /a/b, got %q", got)
	}
}

func TestWindowsParsePathDriveLetter(t *testing.T) {
	root, names, err := WindowsType.ParsePath(`c:\Users\test`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != `C:\` {
		t.Fatalf("expected root C:\\, got %q", root)
	}
	if !reflect.DeepEqual(names, []string{"Users", "test"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestWindowsParsePathAcceptsForwardSlash(t *testing.T) {
	root, names, err := WindowsType.ParsePath(`C:/Users/test`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != `C:\` {
		t.Fatalf("expected root C:\\, got %q", root)
	}
	if !reflect.DeepEqual(names, []string{"Users", "test"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestWindowsParsePathUNC(t *testing.T) {
	root, names, err := WindowsType.ParsePath(`\\server\share\dir\file.txt`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != `\\server\share\` {
		t.Fatalf("unexpected root: %q", root)
	}
	if !reflect.DeepEqual(names, []string{"dir", "file.txt"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestWindowsParsePathIncompleteUNC(t *testing.T) {
	if _, _, err := WindowsType.ParsePath(`\\server`); err == nil {
		t.Fatal("expected error for incomplete UNC root")
	}
}

func TestWindowsIsValidName(t *testing.T) {
	if !WindowsType.IsValidName("file.txt") {
		t.Fatal("expected valid name to be accepted")
	}
	for _, bad := range []string{"", "a:b", "a*b", `a\b`, "a/b", "a?b", `a"b`, "a<b", "a>b", "a|b"} {
		if WindowsType.IsValidName(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestWindowsToURIPath(t *testing.T) {
	if got := WindowsType.ToURIPath(`C:\`, []string{"a", "b"}); got != "C:/a/b" {
		t.Fatalf("unexpected URI path: %q", got)
	}
}

func TestForSelectsInstance(t *testing.T) {
	if For(Unix) != UnixType {
		t.Fatal("expected For(Unix) to return UnixType")
	}
	if For(Windows) != WindowsType {
		t.Fatal("expected For(Windows) to return WindowsType")
	}
}
