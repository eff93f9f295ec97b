package lzma

import (
	"errors"
	"io"
)

// maxUnitLen is the largest number of uncompressed bytes in a coding unit.
// The window keeps at least that many bytes before the head, so the bytes of
// the current unit can always be copied out unchanged.
const maxUnitLen = 1 << 16

// Window is the sliding dictionary of the encoder. It stores the history
// before the head up to the dictionary capacity and the bytes following the
// head that have not been encoded yet.
type Window struct {
	buf []byte
	// absolute stream position of buf[0]
	base int64
	// head of the window; next byte to encode
	pos int
	// end of the data in buf
	end int
	// encoding may proceed up to limit
	limit int

	dictCap    int
	keepBefore int

	flushing  bool
	finishing bool

	ht *hashTable
}

// newWindow creates a window for the dictionary capacity given.
func newWindow(dictCap int) (*Window, error) {
	if !(MinDictCap <= dictCap && dictCap <= MaxDictCap) {
		return nil, errors.New("lzma: dictionary capacity out of range")
	}
	keepBefore := dictCap
	if keepBefore < maxUnitLen {
		keepBefore = maxUnitLen
	}
	reserve := keepBefore/2 + 1<<18
	w := &Window{
		buf:        make([]byte, keepBefore+reserve+maxMatchLen),
		dictCap:    dictCap,
		keepBefore: keepBefore,
		ht:         newHashTable(dictCap, 3),
	}
	return w, nil
}

// Pos returns the absolute position of the window head.
func (w *Window) Pos() int64 {
	return w.base + int64(w.pos)
}

// Buffered returns the number of bytes following the head.
func (w *Window) Buffered() int {
	return w.end - w.pos
}

// dictLen returns the number of bytes before the head that may be used as
// history.
func (w *Window) dictLen() int {
	if p := w.Pos(); p < int64(w.dictCap) {
		return int(p)
	}
	return w.dictCap
}

// move discards data before the history that needs to be kept.
func (w *Window) move() {
	off := w.pos - w.keepBefore
	if off <= 0 {
		return
	}
	copy(w.buf, w.buf[off:w.end])
	w.base += int64(off)
	w.pos -= off
	w.end -= off
	w.limit -= off
	if w.limit < 0 {
		w.limit = 0
	}
}

// updateLimit computes the position up to which the encoder may proceed.
// Outside of flushing and finishing the encoder must have a full match
// length of lookahead available.
func (w *Window) updateLimit() {
	if w.flushing || w.finishing {
		w.limit = w.end
		return
	}
	w.limit = w.end - maxMatchLen
	if w.limit < 0 {
		w.limit = 0
	}
}

// Fill appends bytes from p to the window and returns the number of bytes
// accepted. It returns zero if the window has no space left; the encoder
// must then consume data to make space. Filling leaves flushing mode.
func (w *Window) Fill(p []byte) int {
	if w.finishing {
		panic("lzma: Fill called after SetFinishing")
	}
	if w.end == len(w.buf) {
		w.move()
	}
	n := copy(w.buf[w.end:], p)
	w.end += n
	w.flushing = false
	w.updateLimit()
	return n
}

// SetFlushing allows the encoder to consume all buffered bytes. The mode ends
// with the next Fill.
func (w *Window) SetFlushing() {
	w.flushing = true
	w.updateLimit()
}

// SetFinishing allows the encoder to consume all buffered bytes. No more
// bytes may be filled in.
func (w *Window) SetFinishing() {
	w.finishing = true
	w.updateLimit()
}

// CopyUncompressed writes n bytes to out starting back bytes before the
// head.
func (w *Window) CopyUncompressed(out io.Writer, back, n int) error {
	start := w.pos - back
	if !(0 <= start && 0 <= n && start+n <= w.pos) {
		return errors.New("lzma: uncompressed range outside of window")
	}
	_, err := out.Write(w.buf[start : start+n])
	return err
}

// ByteAt returns the byte at distance dist before the head. Positions before
// the start of the stream return zero.
func (w *Window) ByteAt(dist int) byte {
	if !(0 < dist && int64(dist) <= w.Pos()) {
		return 0
	}
	return w.buf[w.pos-dist]
}

// canEncode reports whether the encoder may consume the byte at the head.
func (w *Window) canEncode() bool {
	return w.pos < w.limit
}

// lookahead returns the bytes after the head available for a match.
func (w *Window) lookahead() []byte {
	e := w.pos + maxMatchLen
	if e > w.end {
		e = w.end
	}
	return w.buf[w.pos:e]
}

// matchLen returns the number of bytes of p that are repeated dist bytes
// before the head.
func (w *Window) matchLen(dist int, p []byte) int {
	q := w.buf[w.pos-dist:]
	for i, b := range p {
		if q[i] != b {
			return i
		}
	}
	return len(p)
}

// advance moves the head n bytes forward and registers the bytes in the hash
// table.
func (w *Window) advance(n int) {
	if !(0 < n && w.pos+n <= w.end) {
		panic("lzma: advance out of range")
	}
	w.ht.Write(w.buf[w.pos : w.pos+n])
	w.pos += n
}
