package main

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ulikunitz/lzma2enc/lzma2"
)

// listChunks writes a line for every chunk of the .lzma2 file read from r
// and a summary. In verbose mode the lines include the chunk offsets.
func listChunks(w io.Writer, r io.Reader, verbose bool) error {
	br := bufio.NewReader(r)
	dictCap, err := readDictCap(br)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', tabwriter.AlignRight)
	cr := lzma2.NewChunkReader(br)
	var chunks, compressed, uncompressed int64
	for {
		off := cr.Offset() + 1
		ci, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			tw.Flush()
			return err
		}
		chunks++
		compressed += int64(ci.Size())
		uncompressed += int64(ci.Uncompressed)
		if verbose {
			fmt.Fprintf(tw, "%d\t", off)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t\n", ci.Type, ci.Uncompressed,
			ci.Compressed)
	}
	ratio := 0.0
	if uncompressed > 0 {
		ratio = float64(compressed+1) / float64(uncompressed)
	}
	fmt.Fprintf(tw, "chunks\tdictcap\tcompressed\tuncompressed\tratio\t\n")
	fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.3f\t\n", chunks,
		lzma2.FormatDictCap(dictCap), compressed+1, uncompressed, ratio)
	return tw.Flush()
}

func listFile(w io.Writer, path string, opts *cmdFlags) (err error) {
	r, err := openInput(path)
	if err != nil {
		return err
	}
	if path != "-" {
		defer r.Close()
		fmt.Fprintf(w, "%s:\n", path)
	}
	return listChunks(w, r, opts.Verbose)
}
