//go:build !windows

package edit

import (
	"io"
	"os"
	"os/signal"
	"syscall"
)

// notifyResize arranges for c to receive a signal whenever the terminal is
// resized. POSIX terminals deliver SIGWINCH; Windows has no equivalent signal
// and instead relies on polling (see input_windows.go).
func notifyResize(c chan os.Signal) {
	signal.Notify(c, syscall.SIGWINCH)
}

// wrapInput returns r unchanged. POSIX terminals already deliver key input as
// the ANSI/SS3 escape sequences that parseKey understands.
func wrapInput(r io.Reader, fd int) io.Reader {
	return r
}
