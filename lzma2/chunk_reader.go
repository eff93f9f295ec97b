package lzma2

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/lzma2enc/internal/stream"
	"github.com/ulikunitz/lzma2enc/lzma"
)

// ChunkInfo describes a single chunk of an LZMA2 stream.
type ChunkInfo struct {
	Type ChunkType
	// uncompressed size of the chunk data
	Uncompressed int
	// compressed size of the chunk data; zero for uncompressed chunks
	Compressed int
	// properties loaded by the chunk; only valid for LRN and LRND
	Properties lzma.Properties
}

// HeaderLen returns the length of the chunk header.
func (ci ChunkInfo) HeaderLen() int { return headerLen(ci.Type) }

// Size returns the number of bytes the chunk occupies in the stream.
func (ci ChunkInfo) Size() int {
	n := ci.HeaderLen()
	switch {
	case ci.Type == EOS:
	case ci.Type.compressed():
		n += ci.Compressed
	default:
		n += ci.Uncompressed
	}
	return n
}

// String returns a string representation of the chunk.
func (ci ChunkInfo) String() string {
	switch {
	case ci.Type == EOS:
		return "EOS"
	case ci.Type.hasProps():
		return fmt.Sprintf("%s %d %d %v", ci.Type, ci.Uncompressed,
			ci.Compressed, ci.Properties)
	case ci.Type.compressed():
		return fmt.Sprintf("%s %d %d", ci.Type, ci.Uncompressed,
			ci.Compressed)
	}
	return fmt.Sprintf("%s %d", ci.Type, ci.Uncompressed)
}

// chunkState tracks the sequence of chunk types. The decoder requires a
// dictionary reset at the start and a properties reset after an uncompressed
// chunk that reset the dictionary.
type chunkState byte

const (
	// start of stream
	stStart chunkState = iota
	// after compressed chunks
	stLZMA
	// after an uncompressed chunk with dictionary reset; properties
	// required
	stReset
	// after uncompressed chunks
	stUncompressed
	// after the end of stream marker
	stEOS
)

var errChunkType = errors.New("lzma2: unexpected chunk type")

// next transitions the state based on the chunk type.
func (s *chunkState) next(t ChunkType) error {
	if t == EOS {
		if *s == stEOS {
			return errChunkType
		}
		*s = stEOS
		return nil
	}
	switch *s {
	case stStart:
		switch t {
		case UD:
			*s = stReset
		case LRND:
			*s = stLZMA
		default:
			return errChunkType
		}
	case stLZMA, stUncompressed:
		switch t {
		case UD:
			*s = stReset
		case U:
			*s = stUncompressed
		default:
			*s = stLZMA
		}
	case stReset:
		switch t {
		case UD, U:
		case LRN, LRND:
			*s = stLZMA
		default:
			return errChunkType
		}
	default:
		return errChunkType
	}
	return nil
}

// ChunkReader reads the chunk headers of an LZMA2 stream and skips the chunk
// data. It checks that the sequence of chunks could be decoded.
type ChunkReader struct {
	r     stream.Reader
	start int64
	state chunkState
	hdr   [6]byte
}

// NewChunkReader creates a chunk reader for the stream r. Chunk payloads are
// skipped by seeking if r is an io.Seeker.
func NewChunkReader(r io.Reader) *ChunkReader {
	sr := stream.Wrap(r)
	return &ChunkReader{r: sr, start: sr.Offset()}
}

// Offset returns the number of stream bytes consumed so far.
func (cr *ChunkReader) Offset() int64 { return cr.r.Offset() - cr.start }

// Next returns the information for the next chunk. After the end of stream
// marker it returns io.EOF. A stream ending without end marker results in
// io.ErrUnexpectedEOF.
func (cr *ChunkReader) Next() (ci ChunkInfo, err error) {
	if cr.state == stEOS {
		return ci, io.EOF
	}
	if _, err = io.ReadFull(cr.r, cr.hdr[:1]); err != nil {
		return ci, noEOF(err)
	}
	if ci.Type, err = controlChunkType(cr.hdr[0]); err != nil {
		return ci, err
	}
	n := headerLen(ci.Type)
	if _, err = io.ReadFull(cr.r, cr.hdr[1:n]); err != nil {
		return ci, noEOF(err)
	}
	if err = cr.state.next(ci.Type); err != nil {
		return ci, fmt.Errorf("%w %s at offset %d", err, ci.Type,
			cr.Offset()-int64(n))
	}
	if ci.Type == EOS {
		return ci, nil
	}
	ci.Uncompressed = int(uint16BE(cr.hdr[1:3])) + 1
	skip := ci.Uncompressed
	if ci.Type.compressed() {
		ci.Uncompressed += int(cr.hdr[0]&^hLRND) << 16
		ci.Compressed = int(uint16BE(cr.hdr[3:5])) + 1
		skip = ci.Compressed
		if ci.Type.hasProps() {
			ci.Properties, err = lzma.PropertiesForCode(cr.hdr[5])
			if err != nil {
				return ci, err
			}
		}
	}
	if _, err = cr.r.Skip(int64(skip)); err != nil {
		return ci, noEOF(err)
	}
	return ci, nil
}

// noEOF converts io.EOF into io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadChunks returns the information of all chunks in the stream including
// the end marker.
func ReadChunks(r io.Reader) ([]ChunkInfo, error) {
	cr := NewChunkReader(r)
	var chunks []ChunkInfo
	for {
		ci, err := cr.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
		chunks = append(chunks, ci)
	}
}
