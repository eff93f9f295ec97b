package hash

// Roller defines an interface provided by a rolling hash.
//
// The method Len provides the length of the byte sequences for which the
// rolling hash will be computed.
//
// The method AddYoung adds a new byte to the provided hash, whereby the hash
// value will be shifted or multiplied accordingly.
//
// The method RemoveOldest removes the provided oldest byte from the hash. The
// hash value will not be shifted or modified.
type Roller interface {
	Len() int
	AddYoung(h uint64, b byte) uint64
	RemoveOldest(h uint64, b byte) uint64
}

// Hash computes the hash for the word p. The length of p should be r.Len().
func Hash(r Roller, p []byte) uint64 {
	var h uint64
	for _, b := range p {
		h = r.AddYoung(h, b)
	}
	return h
}

// ComputeHashes computes all hashes for the byte slices p using the rolling
// hash provided by r.
func ComputeHashes(r Roller, p []byte) []uint64 {
	m, n := len(p), r.Len()
	if m < n {
		return nil
	}
	h := make([]uint64, m-n+1)
	h[0] = Hash(r, p[:n])
	for i := 1; i < len(h); i++ {
		h[i] = r.RemoveOldest(h[i-1], p[i-1])
		h[i] = r.AddYoung(h[i], p[n-1+i])
	}
	return h
}

// Window rolls a hash over a stream of bytes provided one at a time. It
// remembers the last Len() bytes so the oldest byte can be removed.
type Window struct {
	r    Roller
	ring []byte
	// next ring index to overwrite
	i int
	// number of bytes written, saturates at len(ring)
	k int
	h uint64
}

// NewWindow creates a rolling window for the given roller.
func NewWindow(r Roller) *Window {
	return &Window{r: r, ring: make([]byte, r.Len())}
}

// Reset puts the window back into its initial state.
func (w *Window) Reset() {
	w.i, w.k, w.h = 0, 0, 0
}

// RollByte adds the byte b to the window. The value ok reports whether the
// window contains a full word, in which case h is the hash of the last Len()
// bytes.
func (w *Window) RollByte(b byte) (h uint64, ok bool) {
	n := len(w.ring)
	if w.k == n {
		w.h = w.r.RemoveOldest(w.h, w.ring[w.i])
	} else {
		w.k++
	}
	w.h = w.r.AddYoung(w.h, b)
	w.ring[w.i] = b
	w.i++
	if w.i == n {
		w.i = 0
	}
	return w.h, w.k == n
}
