/*
Package xlog provides a Logger interface and supporting functions for debug
output that can be switched off.

The log.Logger type of the standard library satisfies the Logger interface.
All functions of this package accept a nil Logger, in which case they do
nothing and no formatting takes place. The lzma2 writer uses a Logger to
trace the chunks it emits.
*/
package xlog

import "fmt"

// Logger is the interface required by the functions of this package. The
// log.Logger type supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs the arguments using the logger. If the logger is nil nothing
// will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger argument
// is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger argument is
// nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

type prefixLogger struct {
	l      Logger
	prefix string
}

func (p prefixLogger) Output(calldepth int, s string) error {
	return p.l.Output(calldepth+1, p.prefix+s)
}

// WithPrefix returns a logger that puts prefix in front of every message. A
// nil logger is returned unchanged.
func WithPrefix(l Logger, prefix string) Logger {
	if l == nil {
		return nil
	}
	return prefixLogger{l: l, prefix: prefix}
}
