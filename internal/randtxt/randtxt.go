// Package randtxt generates pseudo-random English text for tests. The text
// has the statistics of natural language at word level, which makes it a
// realistic input for compressors.
package randtxt

import (
	"math/rand"
	"sort"
)

// words are common English words in order of decreasing frequency.
var words = []string{
	"the", "of", "and", "to", "a", "in", "is", "you", "that", "it",
	"he", "was", "for", "on", "are", "as", "with", "his", "they", "I",
	"at", "be", "this", "have", "from", "or", "one", "had", "by", "word",
	"but", "not", "what", "all", "were", "we", "when", "your", "can",
	"said", "there", "use", "an", "each", "which", "she", "do", "how",
	"their", "if", "will", "up", "other", "about", "out", "many", "then",
	"them", "these", "so", "some", "her", "would", "make", "like", "him",
	"into", "time", "has", "look", "two", "more", "write", "go", "see",
	"number", "no", "way", "could", "people", "my", "than", "first",
	"water", "been", "call", "who", "oil", "its", "now", "find", "long",
	"down", "day", "did", "get", "come", "made", "may", "part",
	"dictionary", "compression", "stream", "window", "chunk", "encoder",
}

type prob struct {
	s string
	p float64
}

type probs []prob

// searchProb returns the index of the first entry with a cumulative
// probability of at least p.
func (s probs) searchProb(p float64) int {
	i := sort.Search(len(s), func(k int) bool { return s[k].p >= p })
	if i == len(s) {
		i--
	}
	return i
}

// cdf computes the cumulative distribution for the n values provided by the
// function p. The weights don't need to be normalized.
func cdf(n int, p func(i int) prob) probs {
	prs := make(probs, n)
	sum := 0.0
	for i := range prs {
		pr := p(i)
		sum += pr.p
		prs[i] = pr
	}
	q := 1.0 / sum
	x := 0.0
	for i, pr := range prs {
		x += pr.p * q
		if x > 1.0 {
			x = 1.0
		}
		prs[i].p = x
	}
	return prs
}

// wordCDF follows Zipf's law: the frequency of a word is inversely
// proportional to its rank.
var wordCDF = cdf(len(words), func(i int) prob {
	return prob{words[i], 1.0 / float64(i+1)}
})

// Reader produces an endless stream of random sentences.
type Reader struct {
	rnd *rand.Rand
	buf []byte
	// words in the current sentence
	k int
}

// NewReader creates a new reader using the random source.
func NewReader(src rand.Source) *Reader {
	return &Reader{rnd: rand.New(src)}
}

// nextWord appends the next word including separators to the buffer.
func (r *Reader) nextWord() {
	w := wordCDF[wordCDF.searchProb(r.rnd.Float64())].s
	if r.k == 0 && len(w) > 0 && 'a' <= w[0] && w[0] <= 'z' {
		r.buf = append(r.buf, w[0]-'a'+'A')
		r.buf = append(r.buf, w[1:]...)
	} else {
		r.buf = append(r.buf, w...)
	}
	r.k++
	if r.k >= 4 && r.rnd.Intn(8) == 0 {
		r.buf = append(r.buf, '.')
		r.k = 0
		if r.rnd.Intn(6) == 0 {
			r.buf = append(r.buf, '\n')
			return
		}
	}
	r.buf = append(r.buf, ' ')
}

// Read fills p with random text. It never returns an error.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.buf) == 0 {
			r.nextWord()
		}
		k := copy(p[n:], r.buf)
		n += k
		r.buf = r.buf[:copy(r.buf, r.buf[k:])]
	}
	return n, nil
}
