package stream

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func TestWrap(t *testing.T) {
	data := make([]byte, 100000)
	for i := range data {
		data[i] = byte(i)
	}
	tests := []struct {
		name string
		r    func() io.Reader
	}{
		{"seeker", func() io.Reader { return bytes.NewReader(data) }},
		{"discarder", func() io.Reader {
			return bufio.NewReader(iotest.HalfReader(bytes.NewReader(data)))
		}},
		{"counter", func() io.Reader {
			return iotest.OneByteReader(bytes.NewReader(data))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Wrap(tc.r())
			p := make([]byte, 10)
			if _, err := io.ReadFull(r, p); err != nil {
				t.Fatalf("ReadFull error %s", err)
			}
			n, err := r.Skip(50000)
			if err != nil {
				t.Fatalf("Skip error %s", err)
			}
			if n != 50000 {
				t.Fatalf("Skip returned %d; want %d", n, 50000)
			}
			if _, err = io.ReadFull(r, p[:1]); err != nil {
				t.Fatalf("ReadFull error %s", err)
			}
			if p[0] != data[50010] {
				t.Fatalf("byte after skip %d; want %d", p[0],
					data[50010])
			}
			if off := r.Offset(); off != 50011 {
				t.Fatalf("Offset() = %d; want %d", off, 50011)
			}
			n, err = r.Skip(100000)
			if err != io.EOF {
				t.Fatalf("Skip beyond end returned error %v; want %v",
					err, io.EOF)
			}
			if n != int64(len(data))-50011 {
				t.Fatalf("Skip beyond end returned %d; want %d",
					n, int64(len(data))-50011)
			}
			if _, err = r.Skip(-1); err == nil {
				t.Fatalf("Skip(-1) no error")
			}
		})
	}
}

func TestWrapIdempotent(t *testing.T) {
	r := Wrap(bytes.NewReader(nil))
	if Wrap(r) != r {
		t.Fatalf("Wrap changed a Reader")
	}
}
