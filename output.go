package edit

import "io"

// wrapOutput adapts w for the current platform. On Windows legacy consoles
// (cmd.exe without VT100 processing enabled) the raw SGR/cursor escape
// sequences screen.go emits would otherwise print as garbage, so
// output_windows.go wraps w with go-colorable's legacy-console translator.
// POSIX terminals need no adaptation; see output_unix.go.
var wrapOutputForPlatform func(io.Writer) io.Writer

func wrapOutput(w io.Writer) io.Writer {
	if wrapOutputForPlatform == nil {
		return w
	}
	return wrapOutputForPlatform(w)
}
