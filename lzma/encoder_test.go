package lzma

import (
	"bytes"
	"math/rand"
	"testing"
)

// encodeAll encodes data in flushing mode and returns the sizes of the
// coding units.
func encodeAll(t *testing.T, e *Encoder, data []byte) (us, cs []int) {
	t.Helper()
	w := e.Window()
	for len(data) > 0 || w.Buffered() > 0 {
		n := w.Fill(data)
		data = data[n:]
		if len(data) == 0 {
			w.SetFlushing()
		}
		ready, err := e.EncodeUnit()
		if err != nil {
			t.Fatalf("EncodeUnit error %s", err)
		}
		if !ready && w.Buffered() > 0 && len(data) == 0 {
			t.Fatalf("EncodeUnit not ready with %d bytes buffered "+
				"in flushing mode", w.Buffered())
		}
		if !ready && e.UncompressedSize() == 0 {
			continue
		}
		if !ready && len(data) > 0 {
			continue
		}
		c, err := e.FinishUnit()
		if err != nil {
			t.Fatalf("FinishUnit error %s", err)
		}
		var buf bytes.Buffer
		if _, err = e.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo error %s", err)
		}
		if buf.Len() != c {
			t.Fatalf("WriteTo wrote %d bytes; want %d", buf.Len(), c)
		}
		if buf.Bytes()[0] != 0 {
			t.Fatalf("first byte of unit is %#02x; want 0",
				buf.Bytes()[0])
		}
		us = append(us, e.UncompressedSize())
		cs = append(cs, c)
		e.ResetUncompressedSize()
		e.ResetBuffer()
	}
	return us, cs
}

func TestEncoderUnitLimits(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	random := make([]byte, 300000)
	rng.Read(random)
	text := bytes.Repeat([]byte("the quick brown fox jumps over "+
		"the lazy dog "), 20000)
	for _, data := range [][]byte{random, text} {
		e, err := NewEncoder(EncoderConfig{DictCap: 1 << 16})
		if err != nil {
			t.Fatalf("NewEncoder error %s", err)
		}
		us, cs := encodeAll(t, e, data)
		total := 0
		for i := range us {
			if !(0 < us[i] && us[i] <= 1<<16) {
				t.Fatalf("unit %d: uncompressed size %d", i, us[i])
			}
			if !(0 < cs[i] && cs[i] <= 1<<16) {
				t.Fatalf("unit %d: compressed size %d", i, cs[i])
			}
			total += us[i]
		}
		if total != len(data) {
			t.Fatalf("units cover %d bytes; want %d", total, len(data))
		}
	}
}

func TestEncoderCompresses(t *testing.T) {
	e, err := NewEncoder(EncoderConfig{})
	if err != nil {
		t.Fatalf("NewEncoder error %s", err)
	}
	data := bytes.Repeat([]byte("abcdefgh"), 4000)
	_, cs := encodeAll(t, e, data)
	c := 0
	for _, k := range cs {
		c += k
	}
	if c >= len(data)/10 {
		t.Fatalf("compressed size %d for %d repetitive bytes", c,
			len(data))
	}
}

func TestEncoderReset(t *testing.T) {
	e, err := NewEncoder(EncoderConfig{})
	if err != nil {
		t.Fatalf("NewEncoder error %s", err)
	}
	e.Window().Fill([]byte("abcabcabcabcabc"))
	e.Window().SetFlushing()
	if _, err = e.EncodeUnit(); err != nil {
		t.Fatalf("EncodeUnit error %s", err)
	}
	if e.state.state == 0 && e.state.rep[0] == 0 {
		t.Fatalf("state unchanged after encoding matches")
	}
	pos := e.Window().Pos()
	e.Reset()
	if e.state.state != 0 || e.state.rep != [4]uint32{} {
		t.Fatalf("Reset didn't reset state and reps")
	}
	if e.Window().Pos() != pos {
		t.Fatalf("Reset changed the window position")
	}
	if e.UncompressedSize() != 15 {
		t.Fatalf("UncompressedSize() = %d; want 15", e.UncompressedSize())
	}
}

func TestEncoderConfigVerify(t *testing.T) {
	tests := []EncoderConfig{
		{Properties: Properties{LC: 4, LP: 1, PB: 2}},
		{DictCap: 100},
		{NiceLen: 1},
		{Depth: slotEntries + 1},
	}
	for _, cfg := range tests {
		if _, err := NewEncoder(cfg); err == nil {
			t.Errorf("NewEncoder(%+v) succeeded; want error", cfg)
		}
	}
}

func TestMemoryUsage(t *testing.T) {
	small, err := MemoryUsage(EncoderConfig{DictCap: 1 << 16})
	if err != nil {
		t.Fatalf("MemoryUsage error %s", err)
	}
	large, err := MemoryUsage(EncoderConfig{DictCap: 1 << 24})
	if err != nil {
		t.Fatalf("MemoryUsage error %s", err)
	}
	if !(small < large) {
		t.Fatalf("MemoryUsage %d for 64 KiB not below %d for 16 MiB",
			small, large)
	}
	if large < 1<<24 {
		t.Fatalf("MemoryUsage %d below dictionary capacity", large)
	}
}
