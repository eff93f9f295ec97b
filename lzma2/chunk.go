package lzma2

import (
	"errors"
	"fmt"
)

const (
	// maximum size of compressed data in a chunk
	maxCompressed = 1 << 16
	// maximum size of uncompressed data in a chunk written by this
	// package
	maxUncompressed = 1 << 16
	// maximum size of uncompressed data in a compressed chunk accepted by
	// the format
	maxFormatUncompressed = 1 << 21
)

// ChunkType represents the type of an LZMA2 chunk. Note that this value is
// an internal representation and not the actual control byte.
type ChunkType byte

// Possible values for the chunk type.
const (
	// end of stream
	EOS ChunkType = iota
	// uncompressed; reset dictionary
	UD
	// uncompressed; no reset of dictionary
	U
	// LZMA compressed; no reset
	L
	// LZMA compressed; reset state
	LR
	// LZMA compressed; reset state; new property value
	LRN
	// LZMA compressed; reset state; new property value; reset dictionary
	LRND
)

var chunkTypeStrings = [...]string{
	EOS:  "EOS",
	U:    "U",
	UD:   "UD",
	L:    "L",
	LR:   "LR",
	LRN:  "LRN",
	LRND: "LRND",
}

// String returns a string representation of the chunk type.
func (c ChunkType) String() string {
	if c > LRND {
		return "unknown"
	}
	return chunkTypeStrings[c]
}

// compressed reports whether the chunk carries LZMA data.
func (c ChunkType) compressed() bool { return c >= L }

// hasProps reports whether the header contains a properties byte.
func (c ChunkType) hasProps() bool { return c >= LRN }

// Control bytes for the chunk types. The control byte of a compressed chunk
// contains additionally bits 16 to 20 of the uncompressed size minus one.
const (
	hEOS  = 0
	hUD   = 1
	hU    = 2
	hL    = 1 << 7
	hLR   = 1<<7 | 1<<5
	hLRN  = 1<<7 | 1<<6
	hLRND = 1<<7 | 1<<6 | 1<<5
)

var errControl = errors.New("lzma2: unsupported chunk control byte")

// controlChunkType converts the control byte into a chunk type. It ignores
// the uncompressed size bits.
func controlChunkType(h byte) (c ChunkType, err error) {
	if h&hL == 0 {
		switch h {
		case hEOS:
			return EOS, nil
		case hUD:
			return UD, nil
		case hU:
			return U, nil
		}
		return 0, errControl
	}
	switch h & hLRND {
	case hL:
		c = L
	case hLR:
		c = LR
	case hLRN:
		c = LRN
	default:
		c = LRND
	}
	return c, nil
}

// headerLen returns the length of the chunk header for a given chunk type.
func headerLen(c ChunkType) int {
	switch c {
	case EOS:
		return 1
	case U, UD:
		return 3
	case L, LR:
		return 5
	case LRN, LRND:
		return 6
	}
	panic(fmt.Errorf("lzma2: unsupported chunk type %d", c))
}

// putUint16BE puts the big-endian uint16 presentation into the given
// slice.
func putUint16BE(p []byte, x uint16) {
	p[0] = byte(x >> 8)
	p[1] = byte(x)
}

// uint16BE converts a big-endian uint16 representation to an uint16
// value.
func uint16BE(p []byte) uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}

// appendCompressedHeader appends the header of a compressed chunk to p. The
// props byte is only used for the chunk types LRN and LRND. The sizes must
// be in the range [1,65536]; other values are defects of the caller.
func appendCompressedHeader(p []byte, c ChunkType, u, z int, props byte,
) []byte {
	if !c.compressed() {
		panic("lzma2: chunk type is not compressed")
	}
	if !(1 <= u && u <= maxUncompressed) {
		panic(fmt.Errorf("lzma2: uncompressed size %d out of range", u))
	}
	if !(1 <= z && z <= maxCompressed) {
		panic(fmt.Errorf("lzma2: compressed size %d out of range", z))
	}
	var h [6]byte
	switch c {
	case L:
		h[0] = hL
	case LR:
		h[0] = hLR
	case LRN:
		h[0] = hLRN
	case LRND:
		h[0] = hLRND
	}
	h[0] |= byte((u-1)>>16) &^ hLRND
	putUint16BE(h[1:3], uint16(u-1))
	putUint16BE(h[3:5], uint16(z-1))
	h[5] = props
	return append(p, h[:headerLen(c)]...)
}

// appendStoredHeader appends the header of an uncompressed chunk to p.
func appendStoredHeader(p []byte, c ChunkType, n int) []byte {
	var h [3]byte
	switch c {
	case UD:
		h[0] = hUD
	case U:
		h[0] = hU
	default:
		panic("lzma2: chunk type is not uncompressed")
	}
	if !(1 <= n && n <= maxUncompressed) {
		panic(fmt.Errorf("lzma2: stored size %d out of range", n))
	}
	putUint16BE(h[1:3], uint16(n-1))
	return append(p, h[:]...)
}
