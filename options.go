package edit

import (
	"io"
	"os"
)

// Option defines the interface for Prompt options.
type Option interface {
	apply(p *Prompt)
}

type optionFunc func(p *Prompt)

func (f optionFunc) apply(p *Prompt) { f(p) }

type ttyOption struct {
	tty *os.File
}

func (o *ttyOption) apply(p *Prompt) {
	p.fd = int(o.tty.Fd())
	p.in = o.tty
	p.out = o.tty
}

// WithTTY allows configuring a prompt with a different TTY than stdin/stdout.
func WithTTY(tty *os.File) Option {
	return &ttyOption{
		tty: tty,
	}
}

type inputOption struct {
	r io.Reader
}

func (o *inputOption) apply(p *Prompt) {
	p.in = o.r
}

// WithInput allows configuring the input reader for a Prompt. This option is
// primarily useful for tests.
func WithInput(r io.Reader) Option {
	return &inputOption{
		r: r,
	}
}

type outputOption struct {
	w io.Writer
}

func (o *outputOption) apply(p *Prompt) {
	p.out = o.w
}

// WithOutput allows configuring the output writer for a Prompt. This option is
// primarily useful for tests.
func WithOutput(w io.Writer) Option {
	return &outputOption{
		w: w,
	}
}

type sizeOption struct {
	width, height int
}

func (o *sizeOption) apply(p *Prompt) {
	p.mu.state.screen.SetSize(o.width, o.height)
}

// WithSize allows configuring the initial width and height of a Prompt.
// Typically, the width and height of the terminal are automatically determined.
// This option is primarily useful for tests in conjunction with the WithInput
// and WithOutput options.
func WithSize(width, height int) Option {
	return &sizeOption{
		width:  width,
		height: height,
	}
}

// WithInputFinished allows configuring a callback that will be invoked when
// enter is pressed to determine if the input is considered complete or not.
// If the input is not complete, a newline is instead inserted into the
// input. If this option is not supplied, finish-or-enter uses a bracket- and
// quote-balance heuristic instead (see isBalanced).
func WithInputFinished(fn func(text string) bool) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.inputFinished = fn
	})
}

// WithMultiLine makes Enter insert a newline unless the input is already
// complete (per WithInputFinished, or bracket/quote balance by default), in
// which case it submits. This is also what Enter does when neither option is
// supplied, and WithMultiLine does not replace a callback already installed
// by WithInputFinished. Meta-Enter always inserts a newline.
func WithMultiLine() Option {
	return optionFunc(func(p *Prompt) {
		if p.mu.state.inputFinished == nil {
			p.mu.state.inputFinished = isBalanced
		}
	})
}

// WithMultiLineIndent causes a newly started continuation line (see
// WithMultiLine) to inherit the previous line's leading whitespace, plus one
// extra indent level for each bracket opened on that line that has not yet
// been closed.
func WithMultiLineIndent() Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.multilineIndent = true
	})
}

// WithHistoryFile configures persistent history, loaded from and saved to
// path. At most maxEntries are retained; a value <= 0 uses the default of
// 200.
func WithHistoryFile(path string, maxEntries int) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.history.path = path
		if maxEntries > 0 {
			p.mu.state.history.maxSize = maxEntries
		}
	})
}

// WithHistoryDuplicates controls whether consecutive identical history
// entries are both retained. The default is to elide the duplicate.
func WithHistoryDuplicates(allow bool) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.history.allowDuplicates = allow
	})
}

// WithCompleter installs fn as the completion callback invoked by the
// complete command (bound to Tab by default).
func WithCompleter(fn CompleterFunc) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.completion.fn = fn
	})
}

// WithCompletionPreview controls whether the currently selected completion
// candidate is shown as dimmed ghost text while the completion menu is open.
// Enabled by default.
func WithCompletionPreview(enabled bool) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.completion.preview = enabled
	})
}

// WithAutoTab causes completion to run after every inserted character, as if
// Tab had been pressed: a sole candidate is inserted at once, several
// candidates open the completion menu, and no candidate rings the bell.
func WithAutoTab(enabled bool) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.completion.autoTab = enabled
	})
}

// WithHighlighter installs fn to compute syntax highlighting spans after
// every edit. Mutually exclusive with WithPositionalHighlighter; whichever is
// supplied last wins.
func WithHighlighter(fn HighlighterFunc) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.highlighter = fn
		p.mu.state.positionalHighlighter = nil
	})
}

// WithPositionalHighlighter is like WithHighlighter but additionally passes
// the current cursor position, for highlighters that need it (e.g. bracket
// matching).
func WithPositionalHighlighter(fn PositionalHighlighterFunc) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.positionalHighlighter = fn
		p.mu.state.highlighter = nil
	})
}

// WithColor forces color output on or off, overriding the automatic
// NO_COLOR/TERM/isatty detection New otherwise performs.
func WithColor(enabled bool) Option {
	return optionFunc(func(p *Prompt) {
		if enabled {
			p.colorMode = colorForceOn
		} else {
			p.colorMode = colorForceOff
		}
	})
}

// WithInfoColor overrides the escape sequence used for RoleInfo spans. No
// built-in text uses this role; it is available to highlighters.
func WithInfoColor(seq string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetRoleColor(RoleInfo, seq)
	})
}

// WithDiminishColor overrides the escape sequence used for diminished text
// (the history search modeline).
func WithDiminishColor(seq string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetRoleColor(RoleDiminish, seq)
	})
}

// WithEmphasisColor overrides the escape sequence used for emphasized text
// (history search match highlighting).
func WithEmphasisColor(seq string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetRoleColor(RoleEmphasis, seq)
	})
}

// WithHintColor overrides the escape sequence used for hint text (completion
// preview ghost text, F1 inline help).
func WithHintColor(seq string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetRoleColor(RoleHint, seq)
	})
}

// WithPromptMarker appends marker (e.g. "> ") to the prompt string passed to
// ReadLine, so callers only need to supply the informational part of the
// prompt and the marker styling stays consistent across calls.
func WithPromptMarker(marker string) Option {
	return optionFunc(func(p *Prompt) {
		p.promptMarker = marker
	})
}

// WithPromptColor sets the raw escape sequence used to color the whole
// prompt prefix (the prompt text plus any WithPromptMarker marker).
func WithPromptColor(seq string) Option {
	return optionFunc(func(p *Prompt) {
		p.promptColorSeq = seq
	})
}

// WithContinuationMarker sets literal text inserted at the start of every
// continuation line started by Enter/finish-or-enter (see WithMultiLine),
// before any indent added by WithMultiLineIndent.
func WithContinuationMarker(marker string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.continuationMarker = marker
	})
}

// WithBeep controls whether editing operations that can't proceed (a
// non-printable insert, the input-length cap, a completion with no candidates)
// ring the terminal bell. Enabled by default.
func WithBeep(enabled bool) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetBeepEnabled(enabled)
	})
}

// WithInlineHelp installs text shown as dimmed ghost text when F1 is
// pressed, toggled off by F1 again or dismissed by the next unrelated
// keypress.
func WithInlineHelp(text string) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.inlineHelp = text
	})
}

// WithMaxInputLen overrides the hard cap (default 1 MiB) on the number of
// runes Insert will add to the input text. A non-positive n disables the
// cap.
func WithMaxInputLen(n int) Option {
	return optionFunc(func(p *Prompt) {
		p.mu.state.screen.SetMaxLen(n)
	})
}

// WithAmbiguousWide controls whether ambiguous-width Unicode code points
// (e.g. many box-drawing and Greek characters) are measured as occupying two
// terminal columns instead of one. Most terminals measure them as one
// column, which is the default.
func WithAmbiguousWide(wide bool) Option {
	return optionFunc(func(p *Prompt) {
		setAmbiguousWide(wide)
	})
}
