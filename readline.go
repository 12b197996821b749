package edit

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

// ErrCanceled is returned by ReadLine when the user cancels input with
// Ctrl-C. It is distinct from io.EOF (Ctrl-D on an empty buffer) so callers
// can tell the two apart; the canceled line is never added to history.
var ErrCanceled = errors.New("edit: canceled")

// loneEscTimeout bounds how long the reader waits for a byte following a
// bare ESC before giving up and treating it as a standalone Esc keypress,
// rather than waiting forever for the rest of an escape sequence that may
// never arrive.
const loneEscTimeout = 100 * time.Millisecond

// errLoneEscTimeout signals that the disambiguation window for a pending
// lone ESC byte elapsed with no further input.
var errLoneEscTimeout = errors.New("edit: lone-Esc timeout")

// deadlineReader is implemented by *os.File and other fds that support
// bounding a Read with a wall-clock deadline.
type deadlineReader interface {
	SetReadDeadline(t time.Time) error
}

type state struct {
	history    history
	killRing   killRing
	screen     screen
	completion completionEngine
	undo       undoStack

	// inputFinished is a callback invoked by the finish-or-enter command to
	// determine if the input is considered complete. If the callback is nil,
	// isBalanced is used instead. See the WithInputFinished option.
	inputFinished func(text string) bool

	// multilineIndent, when set, causes finish-or-enter to copy the current
	// line's leading whitespace (plus one indent level per unclosed bracket)
	// onto a newly started continuation line. See WithMultiLineIndent.
	multilineIndent bool

	// continuationMarker, when set, is inserted as literal text at the start
	// of every continuation line started by finish-or-enter or enter, before
	// any computed indent. See WithContinuationMarker.
	continuationMarker string

	// highlighter and positionalHighlighter, if set, recompute syntax
	// highlighting spans after every edit. See WithHighlighter and
	// WithPositionalHighlighter.
	highlighter           HighlighterFunc
	positionalHighlighter PositionalHighlighterFunc

	// inlineHelp is the text shown as ghost text when F1 is pressed, and
	// helpShown tracks whether it's currently displayed so the next
	// unrelated keypress dismisses it. See WithInlineHelp.
	inlineHelp string
	helpShown  bool
}

func (s *state) maybeAutoTab() {
	if s.completion.fn == nil {
		return
	}
	if s.completion.autoTab {
		_, _ = s.completion.Start(s)
	}
}

func (s *state) applyHighlight() {
	if s.highlighter == nil && s.positionalHighlighter == nil {
		return
	}
	text := string(s.screen.Text())
	var spans []Highlight
	if s.positionalHighlighter != nil {
		spans = s.positionalHighlighter(text, s.screen.Position())
	} else {
		spans = s.highlighter(text)
	}
	s.screen.ClearAttrs()
	for _, h := range spans {
		s.screen.SetAttrRange(h.From, h.To, h.Role)
	}
}

// Prompt contains the state for reading single or multi-line input from a
// terminal. Similar to readline, libedit, and other CLI line reading
// libraries, Prompt provides support for basic editing functionality such as
// cursor movement, deletion, a kill ring, undo/redo, tab completion, and
// history search.
//
// Prompt supports a common subset of the universe of key input sequences
// which are used by ~75% of the terminals in the terminfo database, including
// most modern terminals. Prompt itself does not use terminfo. Additionally,
// Prompt requires that the terminal handle a minimal set of ANSI escape
// sequences for rendering text:
//
//   - cursor-up:           ESC[A
//   - cursor-down:         ESC[B
//   - cursor-right:        ESC[C
//   - cursor-left:         ESC[D
//   - cursor-home:         ESC[H
//   - erase-line-to-right: ESC[K
//   - erase-screen:        ESC[2J
//
// Prompt eschews using more advanced terminal operations such as
// insert/delete character and insert mode. This decision results in Prompt
// having to re-render more lines of text on editing operations, yet for line
// editing the difference usually amounts to sending a few hundred bytes to
// the terminal (for a long line). On modern hardware and networks, this
// amount of data is trivial. The benefit of eschewing more advanced terminal
// operations is that the same rendering output is used for all terminals as
// opposed to the libedit/readline approach which requires intimate knowledge
// of the terminal capabilities (via terminfo) and which can sometimes go
// horribly wrong resulting in corruption of the rendered text.
type Prompt struct {
	fd  int
	in  io.Reader
	out io.Writer

	// inBytes and inBuf are used by the reader loop to read data from the input.
	inBytes []byte
	inBuf   [256]byte
	prompt  []rune

	// bindings holds key bindings, mapping key input to an command to perform. If a
	// key is not present in the binding map it is inserted at the current cursor
	// position.
	bindings map[rune]command

	colorMode colorMode

	// promptMarker is appended to the prompt string passed to ReadLine before
	// it becomes the screen prefix. See WithPromptMarker.
	promptMarker string
	// promptColorSeq, if set, colors the whole prompt prefix (prompt text
	// plus promptMarker). See WithPromptColor.
	promptColorSeq string

	mu struct {
		sync.Mutex
		state state
	}
}

// New creates a new Prompt using the supplied options. If no options are
// specified, the Prompt uses os.Stdin and os.Stdout for input and output.
func New(options ...Option) *Prompt {
	p := &Prompt{
		in:       os.Stdin,
		out:      os.Stdout,
		bindings: make(map[rune]command),
		fd:       -1,
	}

	if err := parseBindings(p.bindings, defaultBindings); err != nil {
		panic(err)
	}

	p.mu.state.screen.Init()
	p.mu.state.history.maxSize = defaultHistoryMaxSize
	p.mu.state.completion.preview = true
	for _, opt := range options {
		opt.apply(p)
	}

	type fdGetter interface {
		Fd() uintptr
	}
	if f, ok := p.in.(fdGetter); ok {
		p.fd = int(f.Fd())
	}
	p.in = wrapInput(p.in, p.fd)

	p.out = wrapOutput(p.out)
	p.mu.state.screen.SetColorEnabled(detectColor(p.out, p.colorMode))

	if err := p.mu.state.history.Load(); err != nil {
		debugPrintf("history: load failed: %v\n", err)
	}

	return p
}

// Close closes the Prompt, releasing any open resources.
func (p *Prompt) Close() error {
	return nil
}

// ReadLine reads a line of input. If the input stream is at EOF (including
// Ctrl-D on an empty buffer), io.EOF is returned as the error. If the user
// cancels the read with Ctrl-C, ErrCanceled is returned instead; in that case
// the (possibly non-empty) buffer is discarded and never added to history.
func (p *Prompt) ReadLine(prompt string) (string, error) {
	if err := p.updateSize(); err != nil {
		return "", err
	}

	if p.fd != -1 {
		// If we have a file descriptor, set up SIGWINCH handling so we can get notified
		// of changes in the terminal's size.
		winch := make(chan os.Signal, 1)
		notifyResize(winch)
		go func() {
			for range winch {
				_ = p.updateSize()
			}
		}()
		defer func() {
			signal.Stop(winch)
			close(winch)
		}()

		// Put the terminal into raw mode, restoring the
		// original mode on exit.
		saved, err := term.MakeRaw(p.fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(p.fd, saved)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mu.state.screen.Reset([]rune(prompt + p.promptMarker))
	p.mu.state.screen.SetPrefixAttr(p.promptColorSeq)
	p.mu.state.undo.reset()
	p.mu.state.screen.Flush(p.out)

	for {
		// Loop processing keys from the input.
		if result, err := p.processInputLocked(); err != nil {
			return "", err
		} else if len(result) > 0 {
			return result, nil
		}

		// Read more input from the tty. This is slightly complicated in that we need to
		// preserve the data in p.inBytes which may be a partial escape sequence.
		if len(p.inBytes) > 0 {
			n := copy(p.inBuf[:], p.inBytes)
			p.inBytes = p.inBuf[:n]
		}
		readBuf := p.inBuf[len(p.inBytes):]
		ambiguousEsc := pendingLoneEsc(p.inBytes)

		p.mu.Unlock()
		n, err := p.readInput(readBuf, ambiguousEsc)
		p.mu.Lock()

		if errors.Is(err, errLoneEscTimeout) {
			// No further bytes arrived within the disambiguation window; resolve
			// the pending byte as a standalone Esc key rather than waiting for a
			// sequence that isn't coming.
			p.inBytes = p.inBytes[1:]
			err := p.dispatchKeyLocked(keyEscape)
			p.mu.state.applyHighlight()
			result, err := p.finishDispatch(err)
			if err != nil {
				return "", err
			} else if len(result) > 0 {
				return result, nil
			}
			continue
		}

		if err != nil {
			return "", err
		}
		p.inBytes = p.inBuf[:n+len(p.inBytes)]
	}
}

// readInput reads more bytes from p.in. When ambiguousEsc is true, p.inBytes
// holds nothing but unresolved ESC byte(s) that could either be a standalone
// Esc keypress or the lead of a longer escape sequence; readInput then waits
// at most loneEscTimeout for the next byte before reporting
// errLoneEscTimeout, using a deadline on the underlying file descriptor when
// it supports one.
func (p *Prompt) readInput(buf []byte, ambiguousEsc bool) (int, error) {
	if !ambiguousEsc {
		return p.in.Read(buf)
	}
	if d, ok := p.in.(deadlineReader); ok {
		if err := d.SetReadDeadline(time.Now().Add(loneEscTimeout)); err == nil {
			n, rerr := p.in.Read(buf)
			_ = d.SetReadDeadline(time.Time{})
			if errors.Is(rerr, os.ErrDeadlineExceeded) {
				return 0, errLoneEscTimeout
			}
			return n, rerr
		}
	}
	// No deadline support (e.g. a plain pipe in tests): there's no way to
	// bound the blocking Read, so resolve the ambiguity immediately rather
	// than risk hanging forever.
	return 0, errLoneEscTimeout
}

func (p *Prompt) processInputLocked() (result string, outerErr error) {
	defer func() {
		if r := recover(); r != nil {
			outerErr = newCompleterError(r)
		}
	}()

	var err error
	for err == nil {
		var key rune
		origInBytes := p.inBytes
		key, p.inBytes = parseKey(p.inBytes)
		if key == utf8.RuneError {
			break
		}
		debugPrintf(" input: %q -> %s\n",
			origInBytes[:len(origInBytes)-len(p.inBytes)], debugKey(key))

		switch key {
		case keyPasteStart:
			pasted, rest, ok := consumePaste(p.inBytes)
			if !ok {
				if len(origInBytes) < len(p.inBuf) {
					// The terminator hasn't arrived yet; wait for more bytes rather
					// than dropping the paste marker.
					p.inBytes = origInBytes
					return "", nil
				}
				// The input buffer filled up without an end marker: abandon paste
				// mode and decode the buffered bytes as ordinary keys.
				continue
			}
			p.inBytes = rest
			p.mu.state.undo.recordStructural(&p.mu.state)
			p.mu.state.screen.Insert(pasted...)
			p.mu.state.applyHighlight()
			continue
		}

		err = p.dispatchKeyLocked(key)
		p.mu.state.applyHighlight()
	}

	return p.finishDispatch(err)
}

// finishDispatch flushes any pending rendering and converts the terminal
// error from a dispatch loop (nil, io.EOF, or ErrCanceled) into ReadLine's
// result, adding the line to history on a non-empty EOF but never on cancel.
func (p *Prompt) finishDispatch(err error) (string, error) {
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, ErrCanceled) {
		// Flush any buffered rendering commands.
		p.mu.state.screen.Flush(p.out)
	}

	if errors.Is(err, ErrCanceled) {
		return "", ErrCanceled
	}

	if errors.Is(err, io.EOF) {
		if text := string(p.mu.state.screen.Text()); len(text) > 0 {
			p.mu.state.history.Add(text)
			return text, nil
		}
	}
	return "", err
}

func (p *Prompt) updateSize() error {
	if p.fd == -1 {
		return nil
	}

	width, height, err := term.GetSize(p.fd)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mu.state.screen.SetSize(width, height)
	p.mu.state.screen.Flush(p.out)
	return nil
}

func (p *Prompt) dispatchKeyLocked(key rune) error {
	s := &p.mu.state
	cmd := p.bindings[key]
	if cmd == "" {
		cmd = cmdInsertChar
	}

	if s.helpShown && cmd != cmdInlineHelp {
		s.screen.SetSuffix(nil)
		s.helpShown = false
	}

	if ok, err := dispatchCompletion(s, cmd, key); err != nil {
		return err
	} else if ok {
		return nil
	}

	if ok, err := s.killRing.Dispatch(s, cmd, key); err != nil {
		return err
	} else if ok {
		return nil
	}

	if ok, err := s.history.Dispatch(s, cmd, key); err != nil {
		return err
	} else if ok {
		return nil
	}

	if fn, ok := baseCommands[cmd]; ok {
		_, err := fn(s, key)
		return err
	}

	return nil
}

func dispatchCompletion(s *state, cmd command, key rune) (bool, error) {
	if !s.completion.active {
		return false, nil
	}
	if fn, ok := completionCommands[cmd]; ok {
		return fn(s, key)
	}
	s.completion.cancel(s)
	return false, nil
}
