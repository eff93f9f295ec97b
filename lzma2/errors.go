package lzma2

import "errors"

var (
	// ErrFinished is returned by Write if the stream has already been
	// finished.
	ErrFinished = errors.New("lzma2: stream already finished")
	// ErrClosed is returned by Flush and Finish after Close.
	ErrClosed = errors.New("lzma2: writer closed")
)

// fault latches the first error of the writer. Once an error has been
// stored, every further operation of the writer returns it.
type fault struct {
	err error
}

// ok reports whether no error has been latched.
func (f *fault) ok() bool { return f.err == nil }

// latch stores err if no error has been stored before and returns the
// stored error. A nil err doesn't change the fault.
func (f *fault) latch(err error) error {
	if f.err == nil {
		f.err = err
	}
	return f.err
}
