package lzma

import "math/bits"

// Constants used by the distance codec.
const (
	// number of the supported len states
	lenStates = 4
	// start for the position models
	startPosModel = 4
	// first index with align bits support
	endPosModel = 14
	// bits for the position slots
	posSlotBits = 6
	// number of align bits
	alignBits = 4
)

// distCodec provides encoding of distance values.
type distCodec struct {
	posSlotCodecs [lenStates]treeCodec
	posModel      [endPosModel - startPosModel]treeReverseCodec
	alignCodec    treeReverseCodec
}

// init initializes the distance codec.
func (dc *distCodec) init() {
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i] = makeTreeCodec(posSlotBits)
	}
	for i := range dc.posModel {
		posSlot := startPosModel + i
		bits := (posSlot >> 1) - 1
		dc.posModel[i] = makeTreeReverseCodec(bits)
	}
	dc.alignCodec = makeTreeReverseCodec(alignBits)
}

func (dc *distCodec) reset() {
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i].reset()
	}
	for i := range dc.posModel {
		dc.posModel[i].reset()
	}
	dc.alignCodec.reset()
}

// lenState converts the length offset l to a supported lenState value.
func lenState(l uint32) uint32 {
	if l >= lenStates {
		l = lenStates - 1
	}
	return l
}

// Encode encodes the distance offset using the length offset l. The distance
// offset is the actual match distance decreased by 1.
func (dc *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32) (err error) {
	var posSlot uint32
	var n uint32
	if dist < startPosModel {
		posSlot = dist
	} else {
		n = uint32(30 - bits.LeadingZeros32(dist))
		posSlot = startPosModel - 2 + (n << 1)
		posSlot += (dist >> n) & 1
	}

	if err = dc.posSlotCodecs[lenState(l)].Encode(e, posSlot); err != nil {
		return err
	}

	switch {
	case posSlot < startPosModel:
		return nil
	case posSlot < endPosModel:
		tc := &dc.posModel[posSlot-startPosModel]
		return tc.Encode(e, dist)
	}
	dic := directCodec(n - alignBits)
	if err = dic.Encode(e, dist>>alignBits); err != nil {
		return err
	}
	return dc.alignCodec.Encode(e, dist)
}
