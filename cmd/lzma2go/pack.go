package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/mattn/go-isatty"
	xzlzma "github.com/ulikunitz/xz/lzma"

	"github.com/ulikunitz/lzma2enc/lzma2"
	"github.com/ulikunitz/lzma2enc/xio"
)

const lzma2Suffix = ".lzma2"

type packer interface {
	outputPaths(path string) (outputPath, tmpPath string, err error)
	pack(w io.Writer, r io.Reader, opts *cmdFlags) (n int64, err error)
}

// writerConfig returns the writer configuration for the flags.
func writerConfig(opts *cmdFlags) (lzma2.WriterConfig, error) {
	cfg, err := lzma2.Preset(opts.preset)
	if err != nil {
		return cfg, err
	}
	if opts.Trace {
		cfg.Logger = log.Default()
	}
	return cfg, nil
}

type lzma2Packer struct{}

func (p lzma2Packer) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if path == "" {
		return "", "", errors.New("path is empty")
	}
	if strings.HasSuffix(path, lzma2Suffix) {
		return "", "", fmt.Errorf("path %s has suffix %s -- ignored",
			path, lzma2Suffix)
	}
	out = path + lzma2Suffix
	return out, out + ".pack", nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (p lzma2Packer) pack(w io.Writer, r io.Reader, opts *cmdFlags,
) (n int64, err error) {
	cfg, err := writerConfig(opts)
	if err != nil {
		return 0, err
	}
	if opts.Verbose {
		m, err := lzma2.MemoryUsage(cfg)
		if err != nil {
			return 0, err
		}
		log.Printf("configuration %# v", pretty.Formatter(cfg))
		log.Printf("dictionary capacity %s; memory usage %s",
			lzma2.FormatDictCap(int64(cfg.DictCap)),
			lzma2.FormatDictCap(int64(m)))
	}

	stack := xio.NewWriteCloserStack()
	stack.Push(nopCloser{w})
	bw := xio.FlushCloser(bufio.NewWriter(w))
	stack.Push(bw)
	if _, err = bw.Write([]byte{lzma2.EncodeDictCap(int64(cfg.DictCap))}); err != nil {
		stack.Close()
		return 0, err
	}
	z, err := cfg.NewWriter(bw)
	if err != nil {
		stack.Close()
		return 0, err
	}
	n, err = z.ReadFrom(r)
	if err != nil {
		// The writer must not be closed; it would terminate the
		// stream with an end marker.
		stack.Close()
		return n, err
	}
	stack.Push(z)
	return n, stack.Close()
}

type lzma2Unpacker struct{}

func (u lzma2Unpacker) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if !strings.HasSuffix(path, lzma2Suffix) {
		return "", "", fmt.Errorf("path %s has no suffix %s",
			path, lzma2Suffix)
	}
	if filepath.Base(path) == lzma2Suffix {
		return "", "", fmt.Errorf(
			"path %s has only suffix %s as filename",
			path, lzma2Suffix)
	}
	out = path[:len(path)-len(lzma2Suffix)]
	return out, out + ".unpack", nil
}

// readDictCap reads the header byte of a .lzma2 file.
func readDictCap(r io.ByteReader) (dictCap int64, err error) {
	c, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = errors.New("file is empty")
		}
		return 0, err
	}
	return lzma2.DecodeDictCap(c)
}

// pack actually unpacks.
func (u lzma2Unpacker) pack(w io.Writer, r io.Reader, opts *cmdFlags,
) (n int64, err error) {
	br := bufio.NewReader(r)
	dictCap, err := readDictCap(br)
	if err != nil {
		return 0, err
	}
	if opts.Verbose {
		log.Printf("dictionary capacity %s", lzma2.FormatDictCap(dictCap))
	}
	switch {
	case dictCap < xzlzma.MinDictCap:
		dictCap = xzlzma.MinDictCap
	case dictCap > xzlzma.MaxDictCap:
		dictCap = xzlzma.MaxDictCap
	}
	lr, err := xzlzma.Reader2Config{DictCap: int(dictCap)}.NewReader2(br)
	if err != nil {
		return 0, err
	}
	if n, err = io.Copy(w, lr); err != nil {
		return n, err
	}
	if _, err = br.ReadByte(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return n, err
	}
	return n, nil
}

var errTrailingData = errors.New("trailing data after end of stream")

func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, termsigs...)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			if tmpPath != "-" {
				os.Remove(tmpPath)
			}
			os.Exit(7)
		}
	}()
	return quit
}

// openInput opens the file at path, which must be a regular file. The path
// "-" refers to standard input.
func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return os.Open(path)
}

func packFile(pck packer, path, tmpPath string, opts *cmdFlags) (err error) {
	r, err := openInput(path)
	if err != nil {
		return err
	}
	defer func() {
		if r == os.Stdin {
			return
		}
		if err != nil {
			r.Close()
		} else {
			err = r.Close()
		}
	}()

	var w *os.File
	if tmpPath == "-" {
		w = os.Stdout
		_, compress := pck.(lzma2Packer)
		if compress && !opts.Force && (isatty.IsTerminal(w.Fd()) ||
			isatty.IsCygwinTerminal(w.Fd())) {
			return errors.New(
				"compressed data not written to a terminal")
		}
	} else {
		if opts.Force {
			os.Remove(tmpPath)
		}
		w, err = os.OpenFile(tmpPath,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				w.Close()
			} else {
				err = w.Close()
			}
		}()
	}

	n, err := pck.pack(w, r, opts)
	if opts.Verbose && err == nil {
		log.Printf("%s: %d bytes processed", path, n)
	}
	return err
}

// userPathError represents a path error presentable to a user. It doesn't
// contain the operation of os.PathError.
type userPathError struct {
	Path string
	Err  error
}

func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError removes the operation information from path errors.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

func processFile(path string, opts *cmdFlags) error {
	var pck packer
	if opts.Decompress {
		pck = lzma2Unpacker{}
	} else {
		pck = lzma2Packer{}
	}
	outputPath, tmpPath, err := pck.outputPaths(path)
	if err != nil {
		return err
	}
	if opts.Stdout {
		outputPath, tmpPath = "-", "-"
	}
	if outputPath != "-" {
		_, err = os.Lstat(outputPath)
		if err == nil && !opts.Force {
			return fmt.Errorf("file %s exists", outputPath)
		}
	}
	defer func() {
		if tmpPath != "-" {
			os.Remove(tmpPath)
		}
	}()
	quit := signalHandler(tmpPath)
	defer close(quit)

	if err = packFile(pck, path, tmpPath, opts); err != nil {
		return err
	}
	if tmpPath != "-" && outputPath != "-" {
		if err = os.Rename(tmpPath, outputPath); err != nil {
			return err
		}
	}
	if !opts.Keep && !opts.Stdout && path != "-" {
		return os.Remove(path)
	}
	return nil
}
