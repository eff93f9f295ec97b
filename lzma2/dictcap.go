package lzma2

import (
	"errors"
	"fmt"
)

// maxDictCap defines the maximum dictionary capacity supported by the
// LZMA2 dictionary capacity encoding.
const maxDictCap = 1<<32 - 1

// maxDictCapCode defines the maximum dictionary capacity code.
const maxDictCapCode = 40

// decodeDictCap decodes the dictionary capacity code without range checks.
func decodeDictCap(c byte) int64 {
	return (2 | int64(c)&1) << (11 + (c>>1)&0x1f)
}

// DecodeDictCap decodes the dictionary capacity code as used by the xz
// filter properties for LZMA2. The function returns an error if the code is
// out of range.
func DecodeDictCap(c byte) (n int64, err error) {
	if c >= maxDictCapCode {
		if c == maxDictCapCode {
			return maxDictCap, nil
		}
		return 0, errors.New("lzma2: invalid dictionary capacity code")
	}
	return decodeDictCap(c), nil
}

// EncodeDictCap encodes a dictionary capacity. The function returns the code
// for the smallest capacity that is greater or equal n. If n exceeds the
// maximum supported capacity, the maximum code is returned.
func EncodeDictCap(n int64) byte {
	a, b := byte(0), byte(maxDictCapCode)
	for a < b {
		c := a + (b-a)>>1
		m := decodeDictCap(c)
		if n <= m {
			if n == m {
				return c
			}
			b = c
		} else {
			a = c + 1
		}
	}
	return a
}

// FormatDictCap returns a human readable representation of a dictionary
// capacity.
func FormatDictCap(n int64) string {
	const (
		kib = 1024
		mib = 1024 * 1024
	)
	switch {
	case n >= maxDictCap:
		return "4096 MiB - 1 B"
	case n >= mib && n%mib == 0:
		return fmt.Sprintf("%d MiB", n/mib)
	case n >= kib && n%kib == 0:
		return fmt.Sprintf("%d KiB", n/kib)
	}
	return fmt.Sprintf("%d B", n)
}
