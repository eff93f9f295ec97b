package lzma2_test

import (
	"bytes"
	"crypto/sha256"
	"io"
	"testing"

	xzlzma "github.com/ulikunitz/xz/lzma"
	"github.com/ulikunitz/zdata"

	"github.com/ulikunitz/lzma2enc/internal/corpus"
	"github.com/ulikunitz/lzma2enc/lzma2"
)

func TestSilesia(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Silesia corpus in short mode")
	}
	files, err := corpus.Files(zdata.Silesia)
	if err != nil {
		t.Fatalf("corpus.Files(zdata.Silesia) error %s", err)
	}
	files = corpus.Truncate(files, 1<<20)

	cfg, err := lzma2.Preset(3)
	if err != nil {
		t.Fatalf("lzma2.Preset error %s", err)
	}
	for _, f := range files {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			hsum := sha256.Sum256(f.Data)

			buf := new(bytes.Buffer)
			w, err := cfg.NewWriter(buf)
			if err != nil {
				t.Fatalf("NewWriter error %s", err)
			}
			if _, err = io.Copy(w, bytes.NewReader(f.Data)); err != nil {
				t.Fatalf("io.Copy error %s", err)
			}
			if err = w.Close(); err != nil {
				t.Fatalf("w.Close error %s", err)
			}
			if _, err = lzma2.ReadChunks(bytes.NewReader(buf.Bytes())); err != nil {
				t.Fatalf("ReadChunks error %s", err)
			}

			r, err := xzlzma.Reader2Config{DictCap: cfg.DictCap}.NewReader2(buf)
			if err != nil {
				t.Fatalf("NewReader2 error %s", err)
			}
			h := sha256.New()
			if _, err = io.Copy(h, r); err != nil {
				t.Fatalf("io.Copy error %s", err)
			}
			if !bytes.Equal(h.Sum(nil), hsum[:]) {
				t.Fatalf("hash sums differ")
			}
		})
	}
}
