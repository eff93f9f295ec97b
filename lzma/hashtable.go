package lzma

import (
	"math/bits"

	"github.com/ulikunitz/lzma2enc/hash"
)

/* For compression we need to find byte sequences that match the byte
 * sequence at the window head. A hash table is a simple method to
 * provide this capability.
 */

// slotEntries gives the number of entries in one slot of the hash table.
const slotEntries = 16

// The minTableExponent give the minimum and maximum for the table exponent.
// The minimum is somehow arbitrary but the maximum is limited by the
// memory requirements of the hash table.
const (
	minTableExponent = 9
	maxTableExponent = 17
)

// slot is a ring of the most recent positions stored under a hash value.
type slot struct {
	entries [slotEntries]uint32
	// number of valid entries
	n uint8
	// next entry to overwrite
	next uint8
}

// put stores a position in the slot. The oldest entry is overwritten when
// the slot is full.
func (s *slot) put(u uint32) {
	s.entries[s.next] = u
	s.next = uint8((int(s.next) + 1) % slotEntries)
	if s.n < slotEntries {
		s.n++
	}
}

// hashTable stores word positions by the rolling hash of the word. Positions
// are stored as the lower 32 bits of the absolute stream position of the
// first byte of the word.
type hashTable struct {
	t []slot
	// mask for computing the index for the hash table
	mask uint64
	// number of bytes written
	pos int64
	// rolling hash for the bytes written
	win *hash.Window
	// roller for computing the hash of arbitrary words
	r       hash.Roller
	wordLen int
}

// hashTableExponent derives the hash table exponent from the dictionary
// capacity.
func hashTableExponent(n uint32) int {
	e := 30 - bits.LeadingZeros32(n)
	switch {
	case e < minTableExponent:
		e = minTableExponent
	case e > maxTableExponent:
		e = maxTableExponent
	}
	return e
}

// newHashTable creates a new hash table for words of wordLen bytes.
func newHashTable(dictCap int, wordLen int) *hashTable {
	if !(2 <= wordLen && wordLen <= 4) {
		panic("lzma: hash table word length out of range")
	}
	exp := hashTableExponent(uint32(dictCap))
	r := hash.NewCyclicPoly(wordLen)
	return &hashTable{
		t:       make([]slot, 1<<uint(exp)),
		mask:    (uint64(1) << uint(exp)) - 1,
		win:     hash.NewWindow(r),
		r:       r,
		wordLen: wordLen,
	}
}

// WriteByte adds the byte to the rolling hash and stores the position of the
// word that it completes. It never returns an error.
func (t *hashTable) WriteByte(b byte) error {
	h, ok := t.win.RollByte(b)
	t.pos++
	if ok {
		t.t[h&t.mask].put(uint32(t.pos - int64(t.wordLen)))
	}
	return nil
}

// Write adds all bytes to the hash table. The function will never return an
// error.
func (t *hashTable) Write(p []byte) (n int, err error) {
	for _, b := range p {
		t.WriteByte(b)
	}
	return len(p), nil
}

// Matches appends the distances of potential matches for the word p to
// distances. The word must be the sequence at the window head, which is the
// position the hash table has been written up to. The most recent positions
// come first. Matches must be verified by the caller.
func (t *hashTable) Matches(distances []int, p []byte) []int {
	if len(p) != t.wordLen {
		panic("lzma: word length mismatch")
	}
	s := &t.t[hash.Hash(t.r, p)&t.mask]
	head := uint32(t.pos)
	i := int(s.next)
	for k := 0; k < int(s.n); k++ {
		i--
		if i < 0 {
			i = slotEntries - 1
		}
		d := int(head - s.entries[i])
		if d <= 0 {
			continue
		}
		distances = append(distances, d)
	}
	return distances
}
