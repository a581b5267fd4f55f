package web2pdf

import (
	"fmt"
	"io"
	"os"
)

// ANSI escape sequences for console severity colors.
const (
	ansiRed    = "\033[0;31m"
	ansiGreen  = "\033[0;32m"
	ansiYellow = "\033[1;33m"
	ansiBlue   = "\033[0;34m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// console emits colored progress messages. Verbosity gates whether the
// stream is emitted; it never changes classification or control flow.
type console struct {
	verbose bool
	out     io.Writer
}

// newConsole returns a console writing to stderr.
func newConsole(verbose bool) *console {
	return &console{verbose: verbose, out: os.Stderr}
}

func (c *console) printf(color, format string, args ...any) {
	if c == nil || !c.verbose {
		return
	}
	fmt.Fprintf(c.out, color+format+ansiReset+"\n", args...)
}

// infof reports an informational step (blue).
func (c *console) infof(format string, args ...any) { c.printf(ansiBlue, format, args...) }

// successf reports a completed step (green).
func (c *console) successf(format string, args ...any) { c.printf(ansiGreen, format, args...) }

// warnf reports a recoverable problem (yellow).
func (c *console) warnf(format string, args ...any) { c.printf(ansiYellow, format, args...) }

// errorf reports a failure (red).
func (c *console) errorf(format string, args ...any) { c.printf(ansiRed, format, args...) }

// boldf reports a prominent header line.
func (c *console) boldf(format string, args ...any) { c.printf(ansiBold, format, args...) }
