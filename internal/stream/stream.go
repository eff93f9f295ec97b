// Package stream provides readers that track the stream offset and skip data
// efficiently. Chunk payloads are skipped by seeking if the underlying reader
// supports it.
package stream

import (
	"errors"
	"io"
	"math"
)

// Reader is a reader that keeps track of the number of bytes consumed and can
// skip input without copying it.
type Reader interface {
	io.Reader
	Skip(n int64) (skipped int64, err error)
	Offset() int64
}

var errNegative = errors.New("stream: negative skip count")

// counter counts the bytes read from a plain io.Reader and skips by reading
// into a scratch buffer.
type counter struct {
	r   io.Reader
	buf []byte
	off int64
}

func (c *counter) Offset() int64 { return c.off }

func (c *counter) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.off += int64(n)
	return n, err
}

func (c *counter) Skip(n int64) (skipped int64, err error) {
	if n < 0 {
		return 0, errNegative
	}
	if c.buf == nil && n > 0 {
		c.buf = make([]byte, 16*1024)
	}
	for skipped < n {
		p := c.buf
		if k := n - skipped; k < int64(len(p)) {
			p = p[:k]
		}
		k, err := c.Read(p)
		skipped += int64(k)
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

// seeker skips using the Seek method. The offset is relative to the position
// at the creation of the seeker.
type seeker struct {
	rs    io.ReadSeeker
	start int64
	off   int64
	size  int64
}

func newSeeker(rs io.ReadSeeker) (*seeker, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err = rs.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}
	return &seeker{rs: rs, start: start, size: size - start}, nil
}

func (s *seeker) Offset() int64 { return s.off }

func (s *seeker) Read(p []byte) (n int, err error) {
	n, err = s.rs.Read(p)
	s.off += int64(n)
	return n, err
}

// Skip seeks forward. Seeking beyond the end of the data doesn't fail, so the
// size of the stream limits the skip and io.EOF is reported.
func (s *seeker) Skip(n int64) (skipped int64, err error) {
	if n < 0 {
		return 0, errNegative
	}
	if r := s.size - s.off; n > r {
		n, err = r, io.EOF
	}
	if _, serr := s.rs.Seek(n, io.SeekCurrent); serr != nil {
		return 0, serr
	}
	s.off += n
	return n, err
}

// discarder is implemented by bufio.Reader.
type discarder interface {
	io.Reader
	Discard(n int) (discarded int, err error)
}

type discardReader struct {
	r   discarder
	off int64
}

func (d *discardReader) Offset() int64 { return d.off }

func (d *discardReader) Read(p []byte) (n int, err error) {
	n, err = d.r.Read(p)
	d.off += int64(n)
	return n, err
}

func (d *discardReader) Skip(n int64) (skipped int64, err error) {
	if n < 0 {
		return 0, errNegative
	}
	for skipped < n {
		k := n - skipped
		if k > math.MaxInt32 {
			k = math.MaxInt32
		}
		m, err := d.r.Discard(int(k))
		skipped += int64(m)
		d.off += int64(m)
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

// Wrap converts r into a Reader. A Reader is returned unchanged. Seek is used
// for an io.ReadSeeker, a Discard method for a buffered reader and reading
// into a scratch buffer otherwise.
func Wrap(r io.Reader) Reader {
	if sr, ok := r.(Reader); ok {
		return sr
	}
	if rs, ok := r.(io.ReadSeeker); ok {
		if s, err := newSeeker(rs); err == nil {
			return s
		}
	}
	if d, ok := r.(discarder); ok {
		return &discardReader{r: d}
	}
	return &counter{r: r}
}
