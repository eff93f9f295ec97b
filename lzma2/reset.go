package lzma2

// resetState describes what the decoder must reset before it can process
// the next compressed chunk. The values are ordered from the strongest to the
// weakest requirement; each requirement includes the weaker ones.
type resetState byte

const (
	// reset dictionary, load properties and reset state
	needDictReset resetState = iota
	// load properties and reset state
	needPropsReset
	// reset state
	needStateReset
	noReset
)

var resetStateStrings = [...]string{
	needDictReset:  "needDictReset",
	needPropsReset: "needPropsReset",
	needStateReset: "needStateReset",
	noReset:        "noReset",
}

func (s resetState) String() string {
	if s > noReset {
		return "unknown"
	}
	return resetStateStrings[s]
}

// compressedType returns the chunk type for a compressed chunk.
func (s resetState) compressedType() ChunkType {
	switch s {
	case needDictReset:
		return LRND
	case needPropsReset:
		return LRN
	case needStateReset:
		return LR
	}
	return L
}

// storedType returns the chunk type for an uncompressed chunk. Only the
// dictionary reset can be signaled by an uncompressed chunk.
func (s resetState) storedType() ChunkType {
	if s == needDictReset {
		return UD
	}
	return U
}

// afterCompressed returns the state after a compressed chunk has been
// written.
func (s resetState) afterCompressed() resetState {
	return noReset
}

// afterStored returns the state after an uncompressed chunk has been
// written. The dictionary has been reset but the properties are still
// missing, and the model of the encoder has been reset.
func (s resetState) afterStored() resetState {
	if s <= needPropsReset {
		return needPropsReset
	}
	return needStateReset
}
