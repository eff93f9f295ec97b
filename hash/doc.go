/*
Package hash provides rolling hashes for the match finder of the LZMA
encoder.

A rolling hash computes the hash of the n-byte word ending at every position
of a byte stream, where moving the word by one byte costs a constant amount
of work. The package provides a cyclic polynomial hash implementing the
Roller interface. The Window type keeps the last n bytes and rolls the hash
over a stream of single bytes.
*/
package hash
