package lzma2

import "testing"

func TestResetStateTypes(t *testing.T) {
	tests := []struct {
		s          resetState
		compressed ChunkType
		stored     ChunkType
		control    byte
	}{
		{needDictReset, LRND, UD, 0xe0},
		{needPropsReset, LRN, U, 0xc0},
		{needStateReset, LR, U, 0xa0},
		{noReset, L, U, 0x80},
	}
	for _, tc := range tests {
		if c := tc.s.compressedType(); c != tc.compressed {
			t.Errorf("%s.compressedType() = %s; want %s",
				tc.s, c, tc.compressed)
		}
		if c := tc.s.storedType(); c != tc.stored {
			t.Errorf("%s.storedType() = %s; want %s",
				tc.s, c, tc.stored)
		}
		h := appendCompressedHeader(nil, tc.s.compressedType(), 1, 1, 0)
		if h[0] != tc.control {
			t.Errorf("%s: control byte %#02x; want %#02x",
				tc.s, h[0], tc.control)
		}
	}
}

func TestResetStateTransitions(t *testing.T) {
	tests := []struct {
		s               resetState
		afterCompressed resetState
		afterStored     resetState
	}{
		{needDictReset, noReset, needPropsReset},
		{needPropsReset, noReset, needPropsReset},
		{needStateReset, noReset, needStateReset},
		{noReset, noReset, needStateReset},
	}
	for _, tc := range tests {
		if s := tc.s.afterCompressed(); s != tc.afterCompressed {
			t.Errorf("%s.afterCompressed() = %s; want %s",
				tc.s, s, tc.afterCompressed)
		}
		if s := tc.s.afterStored(); s != tc.afterStored {
			t.Errorf("%s.afterStored() = %s; want %s",
				tc.s, s, tc.afterStored)
		}
	}
}

func TestResetStateString(t *testing.T) {
	if s := resetState(42).String(); s != "unknown" {
		t.Fatalf("String() = %q; want %q", s, "unknown")
	}
	if s := needPropsReset.String(); s != "needPropsReset" {
		t.Fatalf("String() = %q; want %q", s, "needPropsReset")
	}
}
