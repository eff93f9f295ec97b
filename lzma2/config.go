package lzma2

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/lzma2enc/lzma"
	"github.com/ulikunitz/lzma2enc/xlog"
)

// WriterConfig describes the parameters for a Writer.
type WriterConfig struct {
	// LZMA properties; LC+LP must not exceed 4
	Properties *lzma.Properties
	// dictionary capacity in bytes
	DictCap int
	// a match of at least NiceLen bytes ends the match search
	NiceLen int
	// number of match candidates checked per position
	Depth int
	// receives a line for every chunk written; nil disables logging
	Logger xlog.Logger
}

// fill replaces zero values with default values.
func (c *WriterConfig) fill() {
	if c.Properties == nil {
		c.Properties = &lzma.Properties{LC: 3, LP: 0, PB: 2}
	}
	if c.DictCap == 0 {
		c.DictCap = 8 * 1024 * 1024
	}
}

// encoderConfig returns the configuration for the LZMA encoder.
func (c *WriterConfig) encoderConfig() lzma.EncoderConfig {
	return lzma.EncoderConfig{
		Properties: *c.Properties,
		DictCap:    c.DictCap,
		NiceLen:    c.NiceLen,
		Depth:      c.Depth,
	}
}

// Verify checks the configuration for errors. Zero values will be replaced
// by default values.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return errors.New("lzma2: WriterConfig is nil")
	}
	c.fill()
	ec := c.encoderConfig()
	ec.ApplyDefaults()
	if err := ec.Verify(); err != nil {
		return fmt.Errorf("lzma2: invalid configuration: %w", err)
	}
	return nil
}

// NewWriter creates a new LZMA2 writer for the configuration. If z
// implements Sink its Flush, Finish and Close methods are used; otherwise
// z is adapted with NewSink.
func (c WriterConfig) NewWriter(z io.Writer) (w *Writer, err error) {
	if err = c.Verify(); err != nil {
		return nil, err
	}
	e, err := lzma.NewEncoder(c.encoderConfig())
	if err != nil {
		return nil, err
	}
	log := xlog.WithPrefix(c.Logger, "lzma2: ")
	xlog.Printf(log, "new writer %v dictCap %d", *c.Properties, c.DictCap)
	return newWriter(NewSink(z), e.Window(), e, c.Properties.Code(), log),
		nil
}

// dictCapExps gives the dictionary capacities of the presets as exponents
// of two.
var dictCapExps = [...]uint{18, 20, 21, 22, 22, 23, 23, 24, 25, 26}

// Preset returns the configuration for the compression level. Levels range
// from 0 (fastest) to 9 (best compression).
func Preset(level int) (WriterConfig, error) {
	if !(0 <= level && level < len(dictCapExps)) {
		return WriterConfig{}, fmt.Errorf(
			"lzma2: preset level %d out of range [0,9]", level)
	}
	c := WriterConfig{
		Properties: &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:    1 << dictCapExps[level],
	}
	switch {
	case level <= 3:
		c.NiceLen, c.Depth = 32, 2+level
	case level <= 6:
		c.NiceLen, c.Depth = 64, 8
	default:
		c.NiceLen, c.Depth = 273, 16
	}
	return c, nil
}

// MemoryUsage estimates the memory in bytes a writer with the given
// configuration requires.
func MemoryUsage(c WriterConfig) (n int, err error) {
	if err = c.Verify(); err != nil {
		return 0, err
	}
	return lzma.MemoryUsage(c.encoderConfig())
}
