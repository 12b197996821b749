//go:build windows

package edit

import (
	"io"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// notifyResize has no POSIX SIGWINCH equivalent on Windows. Instead we poll
// the console's buffer size periodically and let updateSize's width/height
// comparison decide whether anything actually changed.
func notifyResize(c chan os.Signal) {
	go func() {
		for range time.Tick(250 * time.Millisecond) {
			select {
			case c <- nil:
			default:
			}
		}
	}()
}

// wrapInput wraps r with a translator from Windows console key events to the
// same ANSI/SS3 byte sequences parseKey already understands, so the rest of
// the editor never needs to know which platform it is running on. If r is
// not backed by a console input handle, it is returned unchanged.
func wrapInput(r io.Reader, fd int) io.Reader {
	f, ok := r.(*os.File)
	if !ok {
		return r
	}
	handle := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return r
	}
	return &consoleReader{handle: handle}
}

type consoleReader struct {
	handle windows.Handle
	pending []byte
}

func (c *consoleReader) Read(p []byte) (int, error) {
	for len(c.pending) == 0 {
		var rec windows.InputRecord
		var n uint32
		if err := windows.ReadConsoleInput(c.handle, &rec, 1, &n); err != nil {
			return 0, err
		}
		if n == 0 || rec.EventType != windows.KEY_EVENT {
			continue
		}
		ker := rec.KeyEvent
		if ker.BKeyDown == 0 {
			continue
		}
		c.pending = encodeKeyEvent(ker)
	}

	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

// encodeKeyEvent translates a single Windows console key event into the byte
// sequence an xterm-family terminal would have sent for the equivalent key,
// so the shared ANSI decoder in input.go can be reused unmodified.
func encodeKeyEvent(ker windows.KeyEventRecord) []byte {
	const (
		vkLeft  = 0x25
		vkUp    = 0x26
		vkRight = 0x27
		vkDown  = 0x28
		vkHome  = 0x24
		vkEnd   = 0x23
		vkDelete = 0x2E
		vkBack  = 0x08
	)

	switch ker.WVirtualKeyCode {
	case vkLeft:
		return []byte("\x1b[D")
	case vkRight:
		return []byte("\x1b[C")
	case vkUp:
		return []byte("\x1b[A")
	case vkDown:
		return []byte("\x1b[B")
	case vkHome:
		return []byte("\x1b[H")
	case vkEnd:
		return []byte("\x1b[F")
	case vkDelete:
		return []byte("\x1b[3~")
	case vkBack:
		return []byte{0x7f}
	}

	if ker.UnicodeChar == 0 {
		return nil
	}
	return []byte(string(rune(ker.UnicodeChar)))
}
