package ui

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer renders rich terminal UI fragments used by the CLI.
type Printer struct {
	colorEnabled bool
	success      *color.Color
	info         *color.Color
	warn         *color.Color
	error        *color.Color
}

// NewPrinter constructs a Printer with colour automatically enabled for
// TTY outputs.
func NewPrinter() *Printer {
	enabled := supportsColor(os.Stdout) && os.Getenv("NO_COLOR") == ""

	p := &Printer{
		colorEnabled: enabled,
		success:      color.New(color.FgGreen, color.Bold),
		info:         color.New(color.FgBlue, color.Bold),
		warn:         color.New(color.FgYellow, color.Bold),
		error:        color.New(color.FgRed, color.Bold),
	}

	if !enabled {
		p.success.DisableColor()
		p.info.DisableColor()
		p.warn.DisableColor()
		p.error.DisableColor()
	}

	return p
}

// PrintBanner renders the application banner.
func (p *Printer) PrintBanner() {
	lines := []string{
		"=========================================================",
		"    _______ __   _       __               __",
		"   / ____(_) /__| |     / /___ __________/ /__  ____",
		"  / /_  / / / _ \\ | /| / / __ `/ ___/ __  / _ \\/ __ \\",
		" / __/ / / /  __/ |/ |/ / /_/ / /  / /_/ /  __/ / / /",
		"/_/   /_/_/\\___/|__/|__/\\__,_/_/   \\__,_/\\___/_/ /_/",
		"",
		"Workspace file integrity",
		"=========================================================",
	}

	for _, line := range lines {
		p.success.Println(line)
	}
}

// PrintSeparator prints a repeated character separator.
func (p *Printer) PrintSeparator(char string, length int) {
	if length <= 0 {
		length = 57
	}
	p.info.Println(strings.Repeat(char, length))
}

// PrintWarn renders a warning line.
func (p *Printer) PrintWarn(text string) {
	p.warn.Println(text)
}

// PrintError renders an error line.
func (p *Printer) PrintError(text string) {
	p.error.Println(text)
}

func supportsColor(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
