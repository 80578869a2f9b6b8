// Package console renders operator-facing progress lines and banners.
// Output mirrors the capture suite's own texture so the bootstrap and
// the tooling it installs read as one product.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	colorRed    = "\033[91m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorCyan   = "\033[96m"
	colorReset  = "\033[0m"
)

// Console writes tagged status lines to a single stream.
type Console struct {
	Out io.Writer
	// Color enables ANSI escapes. New sets it from terminal detection.
	Color bool
}

// New returns a Console writing to out. Color is enabled only when out
// is a terminal, so piped output stays clean.
func New(out io.Writer) *Console {
	c := &Console{Out: out}
	if f, ok := out.(*os.File); ok {
		c.Color = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *Console) line(color, tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if c.Color {
		fmt.Fprintf(c.Out, "%s%s %s%s\n", color, tag, msg, colorReset)
		return
	}
	fmt.Fprintf(c.Out, "%s %s\n", tag, msg)
}

// Progress reports a step that has started.
func (c *Console) Progress(format string, args ...interface{}) {
	c.line(colorYellow, "[*]", format, args...)
}

// Success reports a step that finished cleanly.
func (c *Console) Success(format string, args ...interface{}) {
	c.line(colorGreen, "[+]", format, args...)
}

// Problem reports a failure or a warning the operator should read.
func (c *Console) Problem(format string, args ...interface{}) {
	c.line(colorRed, "[!]", format, args...)
}

// Banner draws the given lines centred inside a double-line box.
func (c *Console) Banner(lines ...string) {
	width := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString("╔" + strings.Repeat("═", width+4) + "╗\n")
	for _, line := range lines {
		pad := width - utf8.RuneCountInString(line)
		left := pad / 2
		right := pad - left
		b.WriteString("║  " + strings.Repeat(" ", left) + line + strings.Repeat(" ", right) + "  ║\n")
	}
	b.WriteString("╚" + strings.Repeat("═", width+4) + "╝\n")

	if c.Color {
		fmt.Fprintf(c.Out, "%s%s%s", colorCyan, b.String(), colorReset)
		return
	}
	fmt.Fprint(c.Out, b.String())
}
