package lzma2

import (
	"bytes"
	"errors"
	"testing"
)

func seq(n int, start byte) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = start + byte(i)
	}
	return p
}

func cc(n int) []byte { return bytes.Repeat([]byte{0xcc}, n) }

func concat(parts ...[]byte) []byte {
	var p []byte
	for _, q := range parts {
		p = append(p, q...)
	}
	return p
}

func TestWriterEmpty(t *testing.T) {
	w, _, s := newFakeWriter()
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish error %s", err)
	}
	if got := s.buf.Bytes(); !bytes.Equal(got, []byte{0}) {
		t.Fatalf("output % x; want 00", got)
	}
	if s.finishes != 1 {
		t.Fatalf("sink Finish called %d times; want 1", s.finishes)
	}
}

func TestWriterCompressedUnit(t *testing.T) {
	w, _, s := newFakeWriter(unitSize{u: 20, c: 10})
	if _, err := w.Write(seq(20, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish error %s", err)
	}
	want := concat([]byte{0xe0, 0x00, 0x13, 0x00, 0x09, 0x5d}, cc(10),
		[]byte{0})
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("output\n% x\nwant\n% x", got, want)
	}
	if w.pending != 0 {
		t.Fatalf("pending %d after Finish", w.pending)
	}
}

func TestWriterStoredUnit(t *testing.T) {
	w, f, s := newFakeWriter(unitSize{u: 20, c: 19}, unitSize{u: 30, c: 5})
	data := seq(20, 1)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want := concat([]byte{0x01, 0x00, 0x13}, data)
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("output\n% x\nwant\n% x", got, want)
	}
	if f.resets != 1 {
		t.Fatalf("coder reset %d times; want 1", f.resets)
	}
	if w.rs != needPropsReset {
		t.Fatalf("reset state %s; want %s", w.rs, needPropsReset)
	}

	// the properties have never been sent
	s.buf.Reset()
	if _, err := w.Write(seq(30, 50)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want = concat([]byte{0xc0, 0x00, 0x1d, 0x00, 0x04, 0x5d}, cc(5))
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("output\n% x\nwant\n% x", got, want)
	}
}

func TestWriterStateResetAfterStore(t *testing.T) {
	w, _, s := newFakeWriter(
		unitSize{u: 20, c: 10},
		unitSize{u: 20, c: 19},
		unitSize{u: 30, c: 5},
		unitSize{u: 10, c: 3},
	)
	if _, err := w.Write(seq(20, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	s.buf.Reset()
	stored := seq(20, 100)
	if _, err := w.Write(stored); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want := concat([]byte{0x02, 0x00, 0x13}, stored)
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("stored chunk\n% x\nwant\n% x", got, want)
	}
	s.buf.Reset()
	if _, err := w.Write(seq(30, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want = concat([]byte{0xa0, 0x00, 0x1d, 0x00, 0x04}, cc(5))
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("compressed chunk\n% x\nwant\n% x", got, want)
	}
	s.buf.Reset()
	if _, err := w.Write(seq(10, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want = concat([]byte{0x80, 0x00, 0x09, 0x00, 0x02}, cc(3))
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("compressed chunk\n% x\nwant\n% x", got, want)
	}
}

func TestWriterStoredSplit(t *testing.T) {
	const u = 1<<16 + 100
	w, _, s := newFakeWriter(unitSize{u: u, c: u})
	data := make([]byte, u)
	for i := range data {
		data[i] = byte(i * 7)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want := concat([]byte{0x01, 0xff, 0xff}, data[:1<<16],
		[]byte{0x02, 0x00, 0x63}, data[1<<16:])
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("split stored chunks don't match")
	}
}

func TestWriterFlush(t *testing.T) {
	w, _, s := newFakeWriter(unitSize{u: 200, c: 30}, unitSize{u: 50, c: 50})
	if _, err := w.Write(seq(100, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if s.buf.Len() != 0 {
		t.Fatalf("output before Flush")
	}
	if w.pending != 100 {
		t.Fatalf("pending %d; want 100", w.pending)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	want := concat([]byte{0xe0, 0x00, 0x63, 0x00, 0x1d, 0x5d}, cc(30))
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("output\n% x\nwant\n% x", got, want)
	}
	if s.flushes != 1 {
		t.Fatalf("sink flushed %d times; want 1", s.flushes)
	}
	if w.pending != 0 || w.finished {
		t.Fatalf("pending %d finished %t after Flush", w.pending,
			w.finished)
	}
	data := seq(50, 1)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write after Flush error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	want = concat(want, []byte{0x02, 0x00, 0x31}, data, []byte{0})
	if got := s.buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("output\n% x\nwant\n% x", got, want)
	}
	if s.closes != 1 {
		t.Fatalf("sink closed %d times; want 1", s.closes)
	}
}

func TestWriterAfterFinish(t *testing.T) {
	w, _, s := newFakeWriter()
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish error %s", err)
	}
	n := s.buf.Len()
	if _, err := w.Write([]byte("abc")); err != ErrFinished {
		t.Fatalf("Write after Finish returned %v; want %v", err,
			ErrFinished)
	}
	if err := w.WriteByte('a'); err != ErrFinished {
		t.Fatalf("WriteByte after Finish returned %v; want %v", err,
			ErrFinished)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("second Finish error %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error %s", err)
	}
	if s.buf.Len() != n {
		t.Fatalf("output grew from %d to %d bytes", n, s.buf.Len())
	}
	if err := w.Flush(); err != ErrClosed {
		t.Fatalf("Flush after Close returned %v; want %v", err,
			ErrClosed)
	}
}

func TestWriterEmptyWrite(t *testing.T) {
	w, _, s := newFakeWriter()
	n, err := w.Write(nil)
	if n != 0 || err != nil {
		t.Fatalf("Write(nil) = %d, %v; want 0, nil", n, err)
	}
	if s.buf.Len() != 0 || s.writes != 0 {
		t.Fatalf("Write(nil) produced output")
	}
}

func TestWriterFaultSticky(t *testing.T) {
	w, _, s := newFakeWriter(unitSize{u: 20, c: 10}, unitSize{u: 20, c: 10})
	s.failAfter = 2
	if _, err := w.Write(seq(20, 0)); err != nil {
		t.Fatalf("first Write error %s", err)
	}
	n := s.buf.Len()
	_, err := w.Write(seq(20, 0))
	if err != errSink {
		t.Fatalf("Write error %v; want %v", err, errSink)
	}
	writes := s.writes
	if _, err = w.Write([]byte{1}); err != errSink {
		t.Fatalf("Write after fault returned %v; want %v", err, errSink)
	}
	if err = w.Flush(); err != errSink {
		t.Fatalf("Flush after fault returned %v; want %v", err, errSink)
	}
	if err = w.Finish(); err != errSink {
		t.Fatalf("Finish after fault returned %v; want %v", err, errSink)
	}
	if s.flushes != 0 || s.finishes != 0 {
		t.Fatalf("sink flushed or finished after fault")
	}
	if s.writes != writes || s.buf.Len() != n {
		t.Fatalf("output after fault")
	}
	if err = w.Close(); !errors.Is(err, errSink) {
		t.Fatalf("Close after fault returned %v; want %v", err, errSink)
	}
	if s.closes != 1 {
		t.Fatalf("sink closed %d times; want 1", s.closes)
	}
}

func TestWriterCloseJoinsErrors(t *testing.T) {
	errClose := errors.New("close failure")
	w, _, s := newFakeWriter(unitSize{u: 20, c: 10})
	s.failAfter = 1
	s.closeErr = errClose
	if _, err := w.Write(seq(20, 0)); err != errSink {
		t.Fatalf("Write error %v; want %v", err, errSink)
	}
	err := w.Close()
	if !errors.Is(err, errSink) || !errors.Is(err, errClose) {
		t.Fatalf("Close error %v; want both %v and %v", err, errSink,
			errClose)
	}
	if err = w.Close(); err != errSink {
		t.Fatalf("second Close returned %v; want %v", err, errSink)
	}
	if s.closes != 1 {
		t.Fatalf("sink closed %d times; want 1", s.closes)
	}
}

func TestWriterCloseEndMarkerFails(t *testing.T) {
	w, _, s := newFakeWriter()
	if _, err := w.Write(seq(5, 0)); err != nil {
		t.Fatalf("Write error %s", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush error %s", err)
	}
	n := s.buf.Len()
	s.failAfter = s.writes
	if err := w.Close(); err != errSink {
		t.Fatalf("Close returned %v; want %v", err, errSink)
	}
	if s.buf.Len() != n {
		t.Fatalf("end marker written despite sink failure")
	}
	if s.closes != 1 {
		t.Fatalf("sink closed %d times; want 1", s.closes)
	}
	if err := w.Finish(); err != errSink {
		t.Fatalf("Finish after Close returned %v; want %v", err, errSink)
	}
}

func TestWriterCoderFault(t *testing.T) {
	errCoder := errors.New("coder failure")
	w, f, s := newFakeWriter()
	f.err = errCoder
	if _, err := w.Write([]byte{1, 2, 3}); err != errCoder {
		t.Fatalf("Write error %v; want %v", err, errCoder)
	}
	f.err = nil
	if err := w.Finish(); err != errCoder {
		t.Fatalf("Finish returned %v; want %v", err, errCoder)
	}
	if s.buf.Len() != 0 {
		t.Fatalf("output after coder fault")
	}
}
