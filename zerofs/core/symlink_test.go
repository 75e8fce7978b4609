package core

import (
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/pathtype"
)

func TestNewSymbolicLinkStoresTarget(t *testing.T) {
	svc := pathsvc.NewService(pathtype.UnixType, nil, nil, false)
	target, err := svc.ParsePath("/a/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	link := NewSymbolicLink(1, time.Unix(0, 0), target)
	if link.Kind() != KindSymbolicLink {
		t.Fatalf("expected KindSymbolicLink, got %v", link.Kind())
	}
	if !link.Target().Equal(target) {
		t.Fatal("expected Target to return the stored path")
	}
}
