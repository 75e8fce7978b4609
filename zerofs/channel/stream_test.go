package channel

import (
	"io"
	"testing"
)

func TestOutputStreamThenInputStream(t *testing.T) {
	f := newTestFile()

	out := NewOutputStream(f, false, true, nil)
	if _, err := out.Write([]byte("stream data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out.Close()

	in := NewInputStream(f, nil)
	data, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "stream data" {
		t.Fatalf("got %q", data)
	}
}

func TestOutputStreamAppend(t *testing.T) {
	f := newTestFile()
	NewOutputStream(f, false, true, nil).Write([]byte("abc"))

	appender := NewOutputStream(f, true, false, nil)
	appender.Write([]byte("def"))
	appender.Close()

	in := NewInputStream(f, nil)
	data, _ := io.ReadAll(in)
	if string(data) != "abcdef" {
		t.Fatalf("got %q", data)
	}
}

func TestInputStreamEOF(t *testing.T) {
	f := newTestFile()
	in := NewInputStream(f, nil)
	buf := make([]byte, 4)
	n, err := in.Read(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("expected immediate EOF on empty file, got n=%d err=%v", n, err)
	}
}
