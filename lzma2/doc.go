// Package lzma2 writes LZMA2 chunk streams.
//
// An LZMA2 stream is a sequence of chunks terminated by a single zero byte.
// A chunk either carries LZMA compressed data or stores data unchanged. The
// control byte of every chunk tells the decoder whether it has to reset the
// dictionary, load new properties or reset the state of the LZMA model
// before processing the chunk.
//
// The Writer compresses data with an lzma.Encoder and frames every coding
// unit produced by the encoder into chunks. It stores a unit when
// compression doesn't pay off and tracks which resets the decoder needs
// before the next compressed chunk. The ChunkReader walks the headers of an
// existing chunk stream.
package lzma2
