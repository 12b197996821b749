//go:build windows

package edit

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
)

func init() {
	wrapOutputForPlatform = func(w io.Writer) io.Writer {
		f, ok := w.(*os.File)
		if !ok {
			return w
		}
		return colorable.NewColorable(f)
	}
}
