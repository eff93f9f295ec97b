package xlog

import (
	"bytes"
	"log"
	"testing"
)

func TestNilLogger(t *testing.T) {
	Print(nil, "a")
	Printf(nil, "%d", 1)
	Println(nil, "b")
	if l := WithPrefix(nil, "x: "); l != nil {
		t.Fatalf("WithPrefix(nil) returned %v; want nil", l)
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := WithPrefix(log.New(&buf, "", 0), "lzma2: ")
	Printf(l, "chunk %d", 3)
	if got, want := buf.String(), "lzma2: chunk 3\n"; got != want {
		t.Fatalf("output %q; want %q", got, want)
	}
}
