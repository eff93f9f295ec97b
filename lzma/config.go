package lzma

import "errors"

// EncoderConfig defines the parameters of an Encoder.
type EncoderConfig struct {
	Properties Properties
	// dictionary capacity in bytes
	DictCap int
	// a match of at least NiceLen bytes ends the search
	NiceLen int
	// maximum number of hash table candidates checked per position
	Depth int
}

// ApplyDefaults replaces zero values with defaults. A zero Properties value
// is replaced by LC 3, LP 0 and PB 2.
func (c *EncoderConfig) ApplyDefaults() {
	if c.Properties == (Properties{}) {
		c.Properties = Properties{LC: 3, LP: 0, PB: 2}
	}
	if c.DictCap == 0 {
		c.DictCap = 8 << 20
	}
	if c.NiceLen == 0 {
		c.NiceLen = 64
	}
	if c.Depth == 0 {
		c.Depth = 8
	}
}

// Verify checks the configuration for errors.
func (c *EncoderConfig) Verify() error {
	if c == nil {
		return errors.New("lzma: encoder configuration is nil")
	}
	if err := c.Properties.Verify(); err != nil {
		return err
	}
	if !(MinDictCap <= c.DictCap && c.DictCap <= MaxDictCap) {
		return errors.New("lzma: dictionary capacity out of range")
	}
	if !(minMatchLen <= c.NiceLen && c.NiceLen <= maxMatchLen) {
		return errors.New("lzma: nice length out of range")
	}
	if !(1 <= c.Depth && c.Depth <= slotEntries) {
		return errors.New("lzma: depth out of range")
	}
	return nil
}
