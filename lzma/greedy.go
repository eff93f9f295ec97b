package lzma

// maxShortMatchDist limits the distance of matches of length 2. Such matches
// with longer distances are more expensive than two literals.
const maxShortMatchDist = 128

// findOp selects the next operation greedily. Rep matches are preferred
// because their distance is cheap to encode.
func (e *Encoder) findOp() operation {
	w := e.win
	p := w.lookahead()
	dictLen := w.dictLen()

	repLen, repDist := 0, 0
	for i := range e.state.rep {
		d := int(e.state.rep[i]) + 1
		if d > dictLen {
			continue
		}
		if n := w.matchLen(d, p); n > repLen {
			repLen, repDist = n, d
		}
	}
	if repLen >= e.niceLen {
		return operation{distance: repDist, n: repLen}
	}

	mLen, mDist := 0, 0
	if len(p) >= w.ht.wordLen {
		e.dists = w.ht.Matches(e.dists[:0], p[:w.ht.wordLen])
		for k, d := range e.dists {
			if k >= e.depth {
				break
			}
			if d > dictLen {
				continue
			}
			n := w.matchLen(d, p)
			if n > mLen {
				mLen, mDist = n, d
				if n >= e.niceLen {
					break
				}
			}
		}
	}
	if mLen == minMatchLen && mDist > maxShortMatchDist {
		mLen = 0
	}

	switch {
	case repLen >= minMatchLen && repLen+1 >= mLen:
		return operation{distance: repDist, n: repLen}
	case mLen >= minMatchLen:
		return operation{distance: mDist, n: mLen}
	}

	d := int(e.state.rep[0]) + 1
	if d <= dictLen && w.ByteAt(d) == p[0] {
		return operation{distance: d, n: 1}
	}
	return lit()
}
