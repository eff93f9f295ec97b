package hash

import "math/bits"

// cpTable maps every byte to a pseudo-random 64-bit value. It is computed
// with the splitmix64 generator, so the hash values are stable across
// program runs.
var cpTable = func() (t [256]uint64) {
	x := uint64(0x9e3779b97f4a7c15)
	for i := range t {
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		t[i] = z ^ (z >> 31)
	}
	return t
}()

// CyclicPoly provides a cyclic polynomial rolling hash, also known as
// buzhash. The low bits of the hash are well distributed, so the hash can be
// masked directly to index a table.
type CyclicPoly struct {
	n int
}

// NewCyclicPoly creates a cyclic polynomial hash for words of n bytes.
func NewCyclicPoly(n int) *CyclicPoly {
	if !(0 < n && n <= 64) {
		panic("hash: argument n out of range [1,64]")
	}
	return &CyclicPoly{n: n}
}

// Len returns the length of the byte sequence this hash supports.
func (r *CyclicPoly) Len() int { return r.n }

// AddYoung rotates the hash and adds the byte b.
func (r *CyclicPoly) AddYoung(h uint64, b byte) uint64 {
	return bits.RotateLeft64(h, 1) ^ cpTable[b]
}

// RemoveOldest removes the contribution of the oldest byte b, which has been
// rotated n-1 times since it was added.
func (r *CyclicPoly) RemoveOldest(h uint64, b byte) uint64 {
	return h ^ bits.RotateLeft64(cpTable[b], r.n-1)
}
