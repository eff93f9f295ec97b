package lzma

// number of supported states
const states = 12

// state holds the probability model of the LZMA encoder, the rep distances
// and the operation state.
type state struct {
	Properties
	isMatch     [states << maxPosBits]prob
	isRepG0Long [states << maxPosBits]prob
	isRep       [states]prob
	isRepG0     [states]prob
	isRepG1     [states]prob
	isRepG2     [states]prob
	litCodec    literalCodec
	lenCodec    lengthCodec
	repLenCodec lengthCodec
	distCodec   distCodec
	// distance offsets; the actual distances are one larger
	rep        [4]uint32
	state      uint32
	posBitMask uint32
}

// init allocates the probability model for the given properties.
func (s *state) init(p Properties) {
	*s = state{Properties: p}
	s.litCodec.init(p.LC, p.LP)
	s.lenCodec.init()
	s.repLenCodec.init()
	s.distCodec.init()
	s.reset()
}

// reset puts the model back into the initial state. It doesn't allocate.
func (s *state) reset() {
	initProbs(s.isMatch[:])
	initProbs(s.isRepG0Long[:])
	initProbs(s.isRep[:])
	initProbs(s.isRepG0[:])
	initProbs(s.isRepG1[:])
	initProbs(s.isRepG2[:])
	s.litCodec.reset()
	s.lenCodec.reset()
	s.repLenCodec.reset()
	s.distCodec.reset()
	s.rep = [4]uint32{}
	s.state = 0
	s.posBitMask = (1 << uint(s.PB)) - 1
}

// updateStateLiteral updates the state for a literal.
func (s *state) updateStateLiteral() {
	switch {
	case s.state < 4:
		s.state = 0
		return
	case s.state < 10:
		s.state -= 3
		return
	}
	s.state -= 6
}

// updateStateMatch updates the state for a match.
func (s *state) updateStateMatch() {
	if s.state < 7 {
		s.state = 7
	} else {
		s.state = 10
	}
}

// updateStateRep updates the state for a repetition.
func (s *state) updateStateRep() {
	if s.state < 7 {
		s.state = 8
	} else {
		s.state = 11
	}
}

// updateStateShortRep updates the state for a short repetition.
func (s *state) updateStateShortRep() {
	if s.state < 7 {
		s.state = 9
	} else {
		s.state = 11
	}
}

// states computes the states of the operation codec.
func (s *state) states(pos int64) (state1, state2, posState uint32) {
	state1 = s.state
	posState = uint32(pos) & s.posBitMask
	state2 = (s.state << maxPosBits) | posState
	return
}

// litState computes the literal state.
func (s *state) litState(prev byte, pos int64) uint32 {
	lp, lc := uint(s.LP), uint(s.LC)
	litState := ((uint32(pos) & ((1 << lp) - 1)) << lc) |
		(uint32(prev) >> (8 - lc))
	return litState
}
