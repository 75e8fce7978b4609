package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	zerr "github.com/zerofs-dev/zerofs/errors"
)

type fakeCloseable struct {
	closed bool
}

func (f *fakeCloseable) Close() error {
	f.closed = true
	return nil
}

func TestRegisterAndClose(t *testing.T) {
	s := New(nil, nil)
	r1 := &fakeCloseable{}
	r2 := &fakeCloseable{}

	if err := s.Register(r1); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := s.Register(r2); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !r1.closed || !r2.closed {
		t.Fatal("expected both resources to be closed")
	}
	if s.IsOpen() {
		t.Fatal("expected file system to be closed")
	}
}

func TestRegisterAfterClose(t *testing.T) {
	s := New(nil, nil)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	err := s.Register(&fakeCloseable{})
	if !errors.Is(err, zerr.KindClosedFileSystem) {
		t.Fatalf("expected KindClosedFileSystem, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := New(nil, nil)
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestUnregister(t *testing.T) {
	s := New(nil, nil)
	r := &fakeCloseable{}
	if err := s.Register(r); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s.Unregister(r)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if r.closed {
		t.Fatal("expected unregistered resource not to be closed")
	}
}

func TestConcurrentRegisterRacesClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := New(nil, nil)
		var wg sync.WaitGroup
		registered := make([]*fakeCloseable, 64)
		errs := make([]error, len(registered))

		for j := range registered {
			registered[j] = &fakeCloseable{}
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				errs[idx] = s.Register(registered[idx])
			}(j)
		}
		closeErr := s.Close()
		wg.Wait()

		if closeErr != nil {
			t.Fatalf("Close: %v", closeErr)
		}
		for idx, r := range registered {
			if errs[idx] == nil && !r.closed {
				t.Fatalf("resource %d registered successfully but was not closed", idx)
			}
		}
	}
}

func TestNow(t *testing.T) {
	fixed := time.Unix(1000, 0)
	s := New(func() time.Time { return fixed }, nil)
	if !s.Now().Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, s.Now())
	}
}

func TestOnCloseCallback(t *testing.T) {
	called := false
	s := New(nil, func() { called = true })
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !called {
		t.Fatal("expected onClose callback to run")
	}
}
