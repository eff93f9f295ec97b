// Package corpus loads test corpora for compression tests.
package corpus

import (
	"io"
	"io/fs"
	"sort"

	"github.com/ulikunitz/lzma2enc/lzma2"
)

// File is a named file of a corpus.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus. The files are sorted by name.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, err
}

// Size returns the total size of all files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

// Truncate limits the data of every file to at most n bytes.
func Truncate(files []File, n int) []File {
	t := make([]File, len(files))
	for i, f := range files {
		if len(f.Data) > n {
			f.Data = f.Data[:n]
		}
		t[i] = f
	}
	return t
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// Compress compresses every file into a separate LZMA2 stream and returns
// the total compressed size.
func Compress(files []File, cfg lzma2.WriterConfig) (compressedSize int64,
	err error,
) {
	for _, f := range files {
		cw := &countWriter{}
		w, err := cfg.NewWriter(cw)
		if err != nil {
			return compressedSize, err
		}
		if _, err = w.Write(f.Data); err != nil {
			return compressedSize, err
		}
		err = w.Close()
		compressedSize += cw.n
		if err != nil {
			return compressedSize, err
		}
	}
	return compressedSize, nil
}

// Ratio returns the compression ratio as compressed size divided by the
// uncompressed size.
func Ratio(files []File, cfg lzma2.WriterConfig) (float64, error) {
	n, err := Compress(files, cfg)
	if err != nil {
		return 0, err
	}
	total := Size(files)
	if total == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	return float64(n) / float64(total), nil
}
