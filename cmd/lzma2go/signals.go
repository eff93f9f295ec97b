//go:build !windows

package main

import (
	"os"
	"syscall"
)

// termsigs contains the signals that terminate the program. The handler
// removes the temporary output file before exiting.
var termsigs = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGQUIT,
	syscall.SIGPIPE,
	syscall.SIGTERM,
	syscall.SIGXCPU,
	syscall.SIGXFSZ,
}
