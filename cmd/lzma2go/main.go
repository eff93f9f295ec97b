// Command lzma2go compresses and decompresses files in the .lzma2 format. A
// .lzma2 file consists of a single byte encoding the dictionary capacity
// followed by a raw LZMA2 chunk stream.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pborman/getopt/v2"
	"github.com/pborman/options"
)

const usageStr = `Usage: lzma2go [OPTION]... [FILE]...
Compress or uncompress FILEs in the .lzma2 format (by default, compress FILES
in place).

  -c, --stdout      write to standard output and don't delete input files
  -d, --decompress  force decompression
  -f, --force       force overwrite of output file and write compressed
                    data to a terminal
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -l, --list        list the chunks of compressed files
  -v, --verbose     verbose mode
      --trace       log every chunk written
  -0 ... -9         compression preset; default is 6

With no file, or when FILE is -, read standard input.
`

type cmdFlags struct {
	Stdout     bool `getopt:"-c --stdout      write to standard output"`
	Decompress bool `getopt:"-d --decompress  force decompression"`
	Force      bool `getopt:"-f --force       force overwrite of output file"`
	Help       bool `getopt:"-h --help        give this help"`
	Keep       bool `getopt:"-k --keep        keep input files"`
	List       bool `getopt:"-l --list        list the chunks of compressed files"`
	Verbose    bool `getopt:"-v --verbose     verbose mode"`
	Trace      bool `getopt:"--trace          log every chunk written"`

	preset int
}

const defaultPreset = 6

// filterArg removes the preset digits from a short option argument.
func (o *cmdFlags) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for _, c := range arg {
		if '0' <= c && c <= '9' {
			o.preset = int(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// filter extracts the preset options -0 to -9, which getopt cannot handle.
func (o *cmdFlags) filter(args []string) []string {
	out := make([]string, 1, len(args))
	out[0] = args[0]
	for i, arg := range args[1:] {
		if arg == "--" {
			out = append(out, args[1+i:]...)
			break
		}
		if f := o.filterArg(arg); f != "-" || arg == "-" {
			out = append(out, f)
		}
	}
	return out
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)

	opts := &cmdFlags{preset: defaultPreset}
	set := getopt.New()
	if err := options.RegisterSet("", opts, set); err != nil {
		log.Fatalf("option set registration failed: %s", err)
	}
	set.SetProgram(cmdName)
	set.SetParameters("[FILE]...")
	if err := set.Getopt(opts.filter(os.Args), nil); err != nil {
		log.Print(err)
		usage(os.Stderr)
		os.Exit(1)
	}
	if opts.Help {
		usage(os.Stdout)
		os.Exit(0)
	}

	args := set.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := false
	for _, path := range args {
		var err error
		if opts.List {
			err = listFile(os.Stdout, path, opts)
		} else {
			err = processFile(path, opts)
		}
		if err != nil {
			log.Print(userError(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
