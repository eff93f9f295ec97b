// Command tune searches writer configurations for presets. It benchmarks a
// grid of configurations on the Silesia corpus and selects the fastest
// configuration for every compression ratio slot.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/zdata"

	"github.com/ulikunitz/lzma2enc/internal/corpus"
	"github.com/ulikunitz/lzma2enc/lzma2"
)

type preset struct {
	present bool
	cfg     lzma2.WriterConfig
	result  testing.BenchmarkResult
}

// mbPerSec returns the Megabytes (1 000 000 bytes) per seconds that are
// processed.
func mbPerSec(r testing.BenchmarkResult) float64 {
	if v, ok := r.Extra["MB/s"]; ok {
		return v
	}
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

func ratio(r testing.BenchmarkResult) float64 {
	if x, ok := r.Extra["c/u"]; ok {
		return x
	}
	return math.NaN()
}

// Returns the slot index the ratio qualifies for. The slots are sorted in
// decreasing order. If no slot can be found ok will be false.
func slot(slots []float64, ratio float64) (i int, ok bool) {
	for i, r := range slots {
		if ratio > r {
			return i - 1, i > 0
		}
	}
	return len(slots) - 1, true
}

// candidate is a configuration that may be disabled during the search.
type candidate struct {
	cfg      lzma2.WriterConfig
	disabled bool
}

// worse reports whether a spends less effort than b in every parameter. If b
// doesn't reach a slot, a will not reach it either.
func worse(a, b *lzma2.WriterConfig) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	return a.DictCap <= b.DictCap && a.NiceLen <= b.NiceLen &&
		a.Depth <= b.Depth
}

var (
	files     []corpus.File
	filesOnce sync.Once
	limit     = flag.Int("limit", 0, "limit the size of every corpus file")
)

func corpusFiles() []corpus.File {
	filesOnce.Do(func() {
		var err error
		files, err = corpus.Files(zdata.Silesia)
		if err != nil {
			log.Fatalf("corpus.Files(zdata.Silesia) error %s", err)
		}
		if *limit > 0 {
			files = corpus.Truncate(files, *limit)
		}
	})
	return files
}

func writerBenchmark(cfg lzma2.WriterConfig) func(b *testing.B) {
	return func(b *testing.B) {
		files := corpusFiles()
		size := corpus.Size(files)
		b.SetBytes(size)
		var (
			err            error
			compressedSize int64
		)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			compressedSize, err = corpus.Compress(files, cfg)
			if err != nil {
				b.Fatalf("corpus.Compress error %s", err)
			}
		}
		b.StopTimer()
		b.ReportMetric(float64(compressedSize)/float64(size), "c/u")
	}
}

func findPresets(slots []float64, configs []candidate,
	bench func(cfg lzma2.WriterConfig) testing.BenchmarkResult,
) []preset {
	if len(slots) == 0 {
		log.Fatalf("no slots defined")
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i] > slots[j]
	})
	fmt.Printf("slots %.3f\n", slots)
	rand.Shuffle(len(configs), func(i, j int) {
		configs[i], configs[j] = configs[j], configs[i]
	})

	presets := make([]preset, len(slots))
	n := len(configs)
	for i := range configs {
		c := &configs[i]
		if c.disabled {
			continue
		}
		n--
		result := bench(c.cfg)
		fmt.Printf("%d-%d %s\n", i+1, n, result)
		si, ok := slot(slots, ratio(result))
		if !ok {
			for j := i + 1; j < len(configs); j++ {
				p := &configs[j]
				if !p.disabled && worse(&p.cfg, &c.cfg) {
					p.disabled = true
					n--
				}
			}
			continue
		}
		p := presets[si]
		if p.present && mbPerSec(result) <= mbPerSec(p.result) {
			fmt.Printf("slot %d - not faster\n", si+1)
			continue
		}
		presets[si] = preset{present: true, cfg: c.cfg, result: result}
		fmt.Printf("slot %d - update\n", si+1)
		pretty.Println(c.cfg)
	}
	return presets
}

func appendConfigs(x []candidate) []candidate {
	y := x
	for dictExp := 16; dictExp <= 23; dictExp++ {
		for _, niceLen := range []int{16, 32, 64, 128, 273} {
			for _, depth := range []int{1, 2, 4, 8, 16} {
				cfg := lzma2.WriterConfig{
					DictCap: 1 << dictExp,
					NiceLen: niceLen,
					Depth:   depth,
				}
				if err := cfg.Verify(); err != nil {
					log.Fatalf("cfg.Verify error %s", err)
				}
				y = append(y, candidate{cfg: cfg})
			}
		}
	}
	return y
}

func main() {
	testing.Init()
	flag.Parse()
	configs := appendConfigs(nil)
	slots := []float64{0.36, 0.34, 0.32, 0.31, 0.30, 0.29, 0.28, 0.27,
		0.26, 0.25}
	presets := findPresets(slots, configs,
		func(cfg lzma2.WriterConfig) testing.BenchmarkResult {
			return testing.Benchmark(writerBenchmark(cfg))
		})

	fmt.Printf("\n\n### Result ###\n\n")
	for si, p := range presets {
		if si > 0 {
			fmt.Printf("\n")
		}
		if !p.present {
			fmt.Printf("slot %d - not present\n", si+1)
			continue
		}
		fmt.Printf("slot %d - \t%.3f c/u\t%.2f MB/s\n",
			si+1, ratio(p.result), mbPerSec(p.result))
		pretty.Println(p.cfg)
	}
}
