package edit

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// colorMode controls whether the output writer emits SGR escape sequences.
type colorMode int

const (
	colorAuto colorMode = iota
	colorForceOn
	colorForceOff
)

// fdWriter is satisfied by *os.File and lets us query whether a writer is
// connected to a terminal.
type fdWriter interface {
	Fd() uintptr
}

// detectColor decides whether color output should be enabled for w, honoring
// an explicit force from WithColor and otherwise following the environment:
// NO_COLOR disables color unconditionally, a dumb TERM disables it, and
// anything else defers to whether w is actually a terminal.
func detectColor(w io.Writer, mode colorMode) bool {
	switch mode {
	case colorForceOn:
		return true
	case colorForceOff:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	profile := termenv.EnvColorProfile()
	return profile != termenv.Ascii
}
