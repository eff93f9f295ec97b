package lzma

import (
	"errors"
	"fmt"
)

// Maximum and minimum values for the LZMA properties.
const (
	MinLC = 0
	MaxLC = 8
	MinLP = 0
	MaxLP = 4
	MinPB = 0
	MaxPB = 4
)

// MinDictCap and MaxDictCap provide the range of supported dictionary
// capacities.
const (
	MinDictCap = 1 << 12
	MaxDictCap = 3 << 29
)

// Properties define the literal context bits LC, the literal position bits LP
// and the position bits PB of the LZMA model.
type Properties struct {
	LC int
	LP int
	PB int
}

// String returns the properties in a string representation.
func (p Properties) String() string {
	return fmt.Sprintf("LC %d LP %d PB %d", p.LC, p.LP, p.PB)
}

// PropertiesForCode converts a properties byte into a Properties value.
func PropertiesForCode(code byte) (p Properties, err error) {
	p.LC = int(code % 9)
	code /= 9
	p.LP = int(code % 5)
	code /= 5
	p.PB = int(code % 5)
	if code/5 != 0 {
		return p, errors.New("lzma: invalid properties code")
	}
	if err = p.Verify(); err != nil {
		return p, err
	}
	return p, nil
}

// Verify checks the properties for correctness. LZMA2 limits the sum of LC
// and LP to 4.
func (p *Properties) Verify() error {
	if p == nil {
		return errors.New("lzma: properties are nil")
	}
	if !(MinLC <= p.LC && p.LC <= MaxLC) {
		return errors.New("lzma: lc out of range")
	}
	if !(MinLP <= p.LP && p.LP <= MaxLP) {
		return errors.New("lzma: lp out of range")
	}
	if !(MinPB <= p.PB && p.PB <= MaxPB) {
		return errors.New("lzma: pb out of range")
	}
	if p.LC+p.LP > 4 {
		return errors.New("lzma: sum of lc and lp exceeds 4")
	}
	return nil
}

// Code converts the properties to a byte. The function assumes that the
// properties components are all in range.
func (p Properties) Code() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}
