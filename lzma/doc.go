// Package lzma provides the LZMA encoding machinery used by the LZMA2 chunk
// writer: a sliding window with a hash-table match finder and an entropy
// encoder that turns the window content into coding units.
//
// An Encoder owns a Window. Data is appended to the window with Window.Fill.
// Encoder.EncodeUnit converts window data into LZMA operations and range
// encodes them into an internal buffer until a coding unit is complete. The
// sizes of a coding unit are limited, so that both its uncompressed and its
// compressed size fit into a single LZMA2 chunk.
//
// The package doesn't write any headers. Framing the coding units is the task
// of the lzma2 package.
package lzma
