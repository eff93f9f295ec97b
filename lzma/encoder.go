package lzma

import (
	"bytes"
	"io"
)

// Limits of a coding unit. A unit is closed when either size has been
// exceeded. Since a single operation adds at most maxMatchLen bytes and
// a few bytes of compressed output, both sizes stay within 64 KiB.
const (
	unitUncompressedLimit = maxUnitLen - maxMatchLen
	unitCompressedLimit   = (64 << 10) - 26
)

// Encoder encodes the data of its window into coding units. The compressed
// data of a unit is stored in an internal buffer until it is written out with
// WriteTo.
type Encoder struct {
	win   *Window
	state state
	re    rangeEncoder
	buf   bytes.Buffer
	// uncompressed bytes encoded since the last ResetUncompressedSize
	uncompressed int

	niceLen int
	depth   int
	dists   []int
}

// NewEncoder creates a new encoder. Zero values in the configuration are
// replaced by defaults.
func NewEncoder(cfg EncoderConfig) (*Encoder, error) {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	win, err := newWindow(cfg.DictCap)
	if err != nil {
		return nil, err
	}
	e := &Encoder{
		win:     win,
		niceLen: cfg.NiceLen,
		depth:   cfg.Depth,
		dists:   make([]int, 0, slotEntries),
	}
	e.state.init(cfg.Properties)
	e.buf.Grow(maxUnitLen)
	e.re.init(&e.buf)
	return e, nil
}

// Window returns the window of the encoder.
func (e *Encoder) Window() *Window { return e.win }

// Properties returns the properties used by the encoder.
func (e *Encoder) Properties() Properties { return e.state.Properties }

// pendingSize returns the compressed size of the unit if it would be
// finished now.
func (e *Encoder) pendingSize() int {
	return e.buf.Len() + e.re.pending()
}

// EncodeUnit encodes operations until the current coding unit is full, in
// which case it returns true, or until the window doesn't allow further
// encoding.
func (e *Encoder) EncodeUnit() (ready bool, err error) {
	for e.uncompressed <= unitUncompressedLimit &&
		e.pendingSize() <= unitCompressedLimit {
		if !e.win.canEncode() {
			return false, nil
		}
		if err = e.encodeOp(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// encodeOp finds and encodes a single operation.
func (e *Encoder) encodeOp() error {
	op := e.findOp()
	var err error
	if op.isLiteral() {
		err = e.writeLiteral(e.win.buf[e.win.pos])
	} else {
		err = e.writeMatch(op)
	}
	if err != nil {
		return err
	}
	e.win.advance(op.n)
	e.uncompressed += op.n
	return nil
}

// FinishUnit flushes the range encoder and returns the compressed size of
// the coding unit.
func (e *Encoder) FinishUnit() (compressed int, err error) {
	if err = e.re.Close(); err != nil {
		return 0, err
	}
	return e.buf.Len(), nil
}

// UncompressedSize returns the number of bytes encoded since the last call of
// ResetUncompressedSize.
func (e *Encoder) UncompressedSize() int { return e.uncompressed }

// ResetUncompressedSize sets the uncompressed size to zero.
func (e *Encoder) ResetUncompressedSize() { e.uncompressed = 0 }

// Reset puts the probability model, the state and the rep distances back
// into their initial condition. The window content is preserved.
func (e *Encoder) Reset() { e.state.reset() }

// WriteTo writes the compressed data of the unit to w.
func (e *Encoder) WriteTo(w io.Writer) (n int64, err error) {
	return e.buf.WriteTo(w)
}

// ResetBuffer clears the compressed data and restarts the range encoder.
func (e *Encoder) ResetBuffer() {
	e.buf.Reset()
	e.re.init(&e.buf)
}

// writeLiteral writes a literal into the compressed buffer.
func (e *Encoder) writeLiteral(c byte) error {
	pos := e.win.Pos()
	state, state2, _ := e.state.states(pos)
	if err := e.re.EncodeBit(0, &e.state.isMatch[state2]); err != nil {
		return err
	}
	litState := e.state.litState(e.win.ByteAt(1), pos)
	match := e.win.ByteAt(int(e.state.rep[0]) + 1)
	err := e.state.litCodec.Encode(&e.re, c, state, match, litState)
	if err != nil {
		return err
	}
	e.state.updateStateLiteral()
	return nil
}

// iverson implements the Iverson operator as proposed by Donald Knuth in his
// book Concrete Mathematics.
func iverson(ok bool) uint32 {
	if ok {
		return 1
	}
	return 0
}

// writeMatch writes a match or a rep match into the compressed buffer.
func (e *Encoder) writeMatch(op operation) error {
	if !(0 < op.distance && op.distance <= e.win.dictLen()) {
		panic("lzma: match distance out of range")
	}
	dist := uint32(op.distance - 1)
	if !(minMatchLen <= op.n && op.n <= maxMatchLen) &&
		!(dist == e.state.rep[0] && op.n == 1) {
		panic("lzma: match length out of range")
	}
	s := &e.state
	state, state2, posState := s.states(e.win.Pos())
	if err := e.re.EncodeBit(1, &s.isMatch[state2]); err != nil {
		return err
	}
	g := 0
	for ; g < 4; g++ {
		if s.rep[g] == dist {
			break
		}
	}
	b := iverson(g < 4)
	if err := e.re.EncodeBit(b, &s.isRep[state]); err != nil {
		return err
	}
	n := uint32(op.n - minMatchLen)
	if b == 0 {
		// simple match
		s.rep[3], s.rep[2], s.rep[1], s.rep[0] =
			s.rep[2], s.rep[1], s.rep[0], dist
		s.updateStateMatch()
		if err := s.lenCodec.Encode(&e.re, n, posState); err != nil {
			return err
		}
		return s.distCodec.Encode(&e.re, dist, n)
	}
	b = iverson(g != 0)
	if err := e.re.EncodeBit(b, &s.isRepG0[state]); err != nil {
		return err
	}
	if b == 0 {
		// g == 0
		b = iverson(op.n != 1)
		if err := e.re.EncodeBit(b, &s.isRepG0Long[state2]); err != nil {
			return err
		}
		if b == 0 {
			s.updateStateShortRep()
			return nil
		}
	} else {
		// g in {1,2,3}
		b = iverson(g != 1)
		if err := e.re.EncodeBit(b, &s.isRepG1[state]); err != nil {
			return err
		}
		if b == 1 {
			// g in {2,3}
			b = iverson(g != 2)
			if err := e.re.EncodeBit(b, &s.isRepG2[state]); err != nil {
				return err
			}
			if b == 1 {
				s.rep[3] = s.rep[2]
			}
			s.rep[2] = s.rep[1]
		}
		s.rep[1] = s.rep[0]
		s.rep[0] = dist
	}
	s.updateStateRep()
	return s.repLenCodec.Encode(&e.re, n, posState)
}

// MemoryUsage estimates the number of bytes allocated by an encoder with the
// given configuration.
func MemoryUsage(cfg EncoderConfig) (n int, err error) {
	cfg.ApplyDefaults()
	if err = cfg.Verify(); err != nil {
		return 0, err
	}
	keepBefore := cfg.DictCap
	if keepBefore < maxUnitLen {
		keepBefore = maxUnitLen
	}
	n = keepBefore + keepBefore/2 + 1<<18 + maxMatchLen
	n += (1 << uint(hashTableExponent(uint32(cfg.DictCap)))) *
		(slotEntries*4 + 2)
	n += (0x300 << uint(cfg.Properties.LC+cfg.Properties.LP)) * 2
	n += maxUnitLen
	// fixed probability arrays and codecs
	n += 16 << 10
	return n, nil
}
