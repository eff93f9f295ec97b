package lzma2

import (
	"errors"
	"io"

	"github.com/ulikunitz/lzma2enc/xlog"
)

// Window is the sliding dictionary the Writer feeds with data. Fill returns
// the number of bytes accepted. CopyUncompressed writes n bytes starting
// back bytes before the current encoding position. SetFlushing and
// SetFinishing allow the coder to consume all buffered data.
type Window interface {
	Fill(p []byte) int
	CopyUncompressed(w io.Writer, back, n int) error
	SetFlushing()
	SetFinishing()
}

// Coder encodes the data of a Window into coding units. EncodeUnit reports
// whether a coding unit is complete. FinishUnit completes the range coding
// of the unit and returns its compressed size, which WriteTo writes out.
type Coder interface {
	EncodeUnit() (ready bool, err error)
	FinishUnit() (compressed int, err error)
	UncompressedSize() int
	ResetUncompressedSize()
	Reset()
	ResetBuffer()
	io.WriterTo
}

// Writer compresses data into an LZMA2 chunk stream. Errors are sticky: once
// a write to the sink failed, all further calls return the same error.
type Writer struct {
	sink   Sink
	window Window
	coder  Coder
	props  byte
	log    xlog.Logger

	rs resetState
	// bytes accepted by the window but not yet emitted in a chunk
	pending  int
	finished bool
	closed   bool
	fault    fault

	// header buffer
	hdr []byte
}

// NewWriter creates a writer using the default configuration.
func NewWriter(z io.Writer) (w *Writer, err error) {
	return WriterConfig{}.NewWriter(z)
}

// newWriter creates a writer from its components. The props byte is used for
// chunks that load new properties.
func newWriter(sink Sink, window Window, coder Coder, props byte,
	log xlog.Logger,
) *Writer {
	return &Writer{
		sink:   sink,
		window: window,
		coder:  coder,
		props:  props,
		log:    log,
		rs:     needDictReset,
		hdr:    make([]byte, 0, 6),
	}
}

// Write compresses the bytes of p. The chunks are written to the sink as
// soon as a coding unit is complete.
func (w *Writer) Write(p []byte) (n int, err error) {
	if !w.fault.ok() {
		return 0, w.fault.err
	}
	if w.finished {
		return 0, ErrFinished
	}
	for n < len(p) {
		k := w.window.Fill(p[n:])
		n += k
		w.pending += k
		ready, err := w.coder.EncodeUnit()
		if err != nil {
			return n, w.fault.latch(err)
		}
		if ready {
			if err = w.writeChunk(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// WriteByte compresses a single byte.
func (w *Writer) WriteByte(c byte) error {
	_, err := w.Write([]byte{c})
	return err
}

// ReadFrom compresses all data from r until io.EOF.
func (w *Writer) ReadFrom(r io.Reader) (n int64, err error) {
	buf := make([]byte, 32*1024)
	for {
		k, rerr := r.Read(buf)
		if k > 0 {
			if _, err = w.Write(buf[:k]); err != nil {
				return n, err
			}
			n += int64(k)
		}
		if rerr != nil {
			if rerr == io.EOF {
				return n, nil
			}
			return n, rerr
		}
	}
}

// writeChunk closes out the current coding unit. A unit is stored if
// compression doesn't save at least three bytes, which accounts for the two
// extra header bytes of a compressed chunk.
func (w *Writer) writeChunk() error {
	c, err := w.coder.FinishUnit()
	if err != nil {
		return w.fault.latch(err)
	}
	u := w.coder.UncompressedSize()
	if c+2 < u {
		err = w.writeCompressed(u, c)
	} else {
		w.coder.Reset()
		u = w.coder.UncompressedSize()
		err = w.writeStored(u)
	}
	if err != nil {
		return w.fault.latch(err)
	}
	w.pending -= u
	w.coder.ResetUncompressedSize()
	w.coder.ResetBuffer()
	return nil
}

// writeCompressed writes the header and the payload of a compressed chunk.
func (w *Writer) writeCompressed(u, c int) error {
	t := w.rs.compressedType()
	w.hdr = appendCompressedHeader(w.hdr[:0], t, u, c, w.props)
	if _, err := w.sink.Write(w.hdr); err != nil {
		return err
	}
	if _, err := w.coder.WriteTo(w.sink); err != nil {
		return err
	}
	xlog.Printf(w.log, "chunk %s u=%d c=%d", t, u, c)
	w.rs = w.rs.afterCompressed()
	return nil
}

// writeStored writes the last u bytes as uncompressed chunks.
func (w *Writer) writeStored(u int) error {
	for back := u; back > 0; {
		n := back
		if n > maxUncompressed {
			n = maxUncompressed
		}
		t := w.rs.storedType()
		w.hdr = appendStoredHeader(w.hdr[:0], t, n)
		if _, err := w.sink.Write(w.hdr); err != nil {
			return err
		}
		if err := w.window.CopyUncompressed(w.sink, back, n); err != nil {
			return err
		}
		xlog.Printf(w.log, "chunk %s u=%d", t, n)
		back -= n
		w.rs = w.rs.afterStored()
	}
	return nil
}

// drain emits chunks until all pending data has been written.
func (w *Writer) drain() error {
	for w.pending > 0 {
		if _, err := w.coder.EncodeUnit(); err != nil {
			return w.fault.latch(err)
		}
		if err := w.writeChunk(); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes all pending data as chunks and flushes the sink. The stream
// can be continued after a flush.
func (w *Writer) Flush() error {
	if !w.fault.ok() {
		return w.fault.err
	}
	if w.closed {
		return ErrClosed
	}
	if !w.finished {
		w.window.SetFlushing()
		if err := w.drain(); err != nil {
			return err
		}
	}
	return w.fault.latch(w.sink.Flush())
}

// writeEndMarker writes all pending data and the end marker. It does nothing
// if the stream has already been finished.
func (w *Writer) writeEndMarker() error {
	if w.finished {
		return nil
	}
	w.window.SetFinishing()
	if err := w.drain(); err != nil {
		return err
	}
	if _, err := w.sink.Write([]byte{hEOS}); err != nil {
		return w.fault.latch(err)
	}
	xlog.Print(w.log, "chunk EOS")
	w.finished = true
	return nil
}

// Finish writes all pending data and the end marker and finishes the sink
// without closing it.
func (w *Writer) Finish() error {
	if !w.fault.ok() {
		return w.fault.err
	}
	if w.closed {
		return ErrClosed
	}
	if err := w.writeEndMarker(); err != nil {
		return err
	}
	return w.fault.latch(w.sink.Finish())
}

// Close finishes the stream if required and closes the sink. The sink is
// closed even if an error has been latched before; the errors are joined.
func (w *Writer) Close() error {
	if w.closed {
		return w.fault.err
	}
	w.closed = true
	if w.fault.ok() {
		// errors are latched in w.fault
		_ = w.writeEndMarker()
	}
	cerr := w.sink.Close()
	if !w.fault.ok() {
		if cerr != nil {
			return errors.Join(w.fault.err, cerr)
		}
		return w.fault.err
	}
	return w.fault.latch(cerr)
}
