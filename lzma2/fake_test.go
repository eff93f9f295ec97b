package lzma2

import (
	"bytes"
	"errors"
	"io"
)

// unitSize plans the sizes of a coding unit produced by fakeCodec.
type unitSize struct {
	u, c int
}

// fakeCodec implements Window and Coder. The sizes of the coding units are
// scripted; the compressed payload consists of c bytes 0xcc.
type fakeCodec struct {
	data []byte
	// bytes assigned to coding units
	pos      int
	sizes    []unitSize
	cur      unitSize
	unit     int
	draining bool
	payload  []byte
	resets   int
	err      error
}

func (f *fakeCodec) Fill(p []byte) int {
	f.data = append(f.data, p...)
	f.draining = false
	return len(p)
}

func (f *fakeCodec) CopyUncompressed(w io.Writer, back, n int) error {
	start := f.pos - back
	if start < 0 || start+n > f.pos {
		return errors.New("fake: invalid range")
	}
	_, err := w.Write(f.data[start : start+n])
	return err
}

func (f *fakeCodec) SetFlushing()  { f.draining = true }
func (f *fakeCodec) SetFinishing() { f.draining = true }

func (f *fakeCodec) EncodeUnit() (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	avail := len(f.data) - f.pos
	s := unitSize{u: avail, c: avail}
	if len(f.sizes) > 0 {
		s = f.sizes[0]
	}
	switch {
	case avail >= s.u && s.u > 0:
	case f.draining && avail > 0:
		s.u = avail
	default:
		return false, nil
	}
	if len(f.sizes) > 0 {
		f.sizes = f.sizes[1:]
	}
	f.cur = s
	f.unit += s.u
	f.pos += s.u
	return true, nil
}

func (f *fakeCodec) FinishUnit() (int, error) {
	f.payload = bytes.Repeat([]byte{0xcc}, f.cur.c)
	return f.cur.c, nil
}

func (f *fakeCodec) UncompressedSize() int  { return f.unit }
func (f *fakeCodec) ResetUncompressedSize() { f.unit = 0 }
func (f *fakeCodec) Reset()                 { f.resets++ }
func (f *fakeCodec) ResetBuffer()           { f.payload = nil }

func (f *fakeCodec) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.payload)
	return int64(n), err
}

// recordSink records the bytes written and the calls of the Sink methods.
// Writes fail after failAfter successful writes if failAfter is positive.
type recordSink struct {
	buf       bytes.Buffer
	writes    int
	failAfter int
	flushes   int
	finishes  int
	closes    int
	closeErr  error
}

var errSink = errors.New("sink failure")

func (s *recordSink) Write(p []byte) (int, error) {
	if s.failAfter > 0 && s.writes >= s.failAfter {
		return 0, errSink
	}
	s.writes++
	return s.buf.Write(p)
}

func (s *recordSink) Flush() error  { s.flushes++; return nil }
func (s *recordSink) Finish() error { s.finishes++; return nil }

func (s *recordSink) Close() error {
	s.closes++
	return s.closeErr
}

// newFakeWriter creates a writer using fakeCodec with the given unit sizes.
func newFakeWriter(sizes ...unitSize) (*Writer, *fakeCodec, *recordSink) {
	f := &fakeCodec{sizes: sizes}
	s := &recordSink{}
	return newWriter(s, f, f, 0x5d, nil), f, s
}
