// Package log prints colored status messages to stderr. Session data flows
// over stdout/stdin, so everything here stays on stderr to keep the byte
// streams clean.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()

// ErrorMsg prints an error message to stderr in red.
func ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue.
func InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// VerboseMsg prints an informational message only when verbose is set.
func VerboseMsg(verbose bool, format string, a ...interface{}) {
	if verbose {
		InfoMsg(format, a...)
	}
}
