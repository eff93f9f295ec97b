package lzma2

import (
	"errors"
	"io"
)

// Sink is the destination of a chunk stream. Flush pushes buffered data
// downstream. Finish completes a layered stream without closing the layers
// below. Close releases the sink.
type Sink interface {
	io.Writer
	Flush() error
	Finish() error
	Close() error
}

type flusher interface {
	Flush() error
}

type finisher interface {
	Finish() error
}

// writerSink adapts an io.Writer to the Sink interface.
type writerSink struct {
	w io.Writer
}

// NewSink converts w into a Sink. If w is already a Sink it is returned
// directly. Otherwise Flush calls the Flush method of w if it has one, Finish
// calls a Finish method or falls back to Flush, and Close flushes w and
// closes it if it is an io.Closer.
func NewSink(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return writerSink{w}
}

func (s writerSink) Write(p []byte) (n int, err error) {
	return s.w.Write(p)
}

func (s writerSink) Flush() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s writerSink) Finish() error {
	if f, ok := s.w.(finisher); ok {
		return f.Finish()
	}
	return s.Flush()
}

func (s writerSink) Close() error {
	err := s.Flush()
	if c, ok := s.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
