package edit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const defaultHistoryMaxSize = 200

var historyCommands = map[command]commandFunc{
	cmdAbort: func(s *state, key rune) (bool, error) {
		return s.history.AbortSearch(s)
	},
	cmdBackwardDeleteChar: func(s *state, key rune) (bool, error) {
		return s.history.TruncateSearchKey(s)
	},
	cmdCancel: func(s *state, key rune) (bool, error) {
		return s.history.CancelSearch(s)
	},
	cmdForwardSearchHistory: func(s *state, key rune) (bool, error) {
		return s.history.ForwardSearch(s)
	},
	cmdInsertChar: func(s *state, key rune) (bool, error) {
		return s.history.AppendSearchKey(s, key)
	},
	cmdReverseSearchHistory: func(s *state, key rune) (bool, error) {
		return s.history.ReverseSearch(s)
	},
	cmdNextHistory: func(s *state, key rune) (bool, error) {
		return s.history.Next(s)
	},
	cmdPreviousHistory: func(s *state, key rune) (bool, error) {
		return s.history.Previous(s)
	},
}

// history implements a fixed size circular list of history entries and
// commands for navigating and searching the list. Adjacent duplicate history
// entries are suppressed unless allowDuplicates is set. Forward and reverse
// incremental search of both history entries and the pending input includes
// positioning of the cursor within the currently matched line when there is
// more than one match on a line.
type history struct {
	path            string
	maxSize         int
	allowDuplicates bool
	onError         func(error)

	pending string
	entries []string
	head    int
	index   int

	searchDir        int
	searchMatched    bool
	searchKey        string
	searchMatchedKey string
}

// Load loads history entries from file, creating it if it does not exist.
// Blank lines are ignored; only the last maxSize lines are loaded, and the
// file itself is left as it is.
func (h *history) Load() error {
	if h.path == "" {
		return nil
	}
	if h.maxSize == 0 {
		h.maxSize = defaultHistoryMaxSize
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_RDONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		text := s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, text)
	}
	if err := s.Err(); err != nil {
		return err
	}

	if len(lines) > h.maxSize {
		lines = lines[len(lines)-h.maxSize:]
	}
	for _, line := range lines {
		v, err := unescapeEntry(line)
		if err != nil {
			return err
		}
		h.add(v)
	}
	return nil
}

// Save writes the full history to file atomically (temp file + rename),
// using mode 0600. If no path was configured, Save is a no-op.
func (h *history) Save() error {
	if h.path == "" {
		return nil
	}

	dir := filepath.Dir(h.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(h.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}

	w := bufio.NewWriter(tmp)
	for i := h.Len() - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, escapeEntry(h.entry(i))); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, h.path)
}

// Add adds a new entry to history, dropping the oldest entry if the soft cap
// has been reached. The current index in the history navigation is reset. If
// a history file was configured, the new entry is persisted immediately.
func (h *history) Add(s string) {
	h.add(s)
	if h.path != "" {
		if err := h.Save(); err != nil {
			debugPrintf("history: save failed: %v\n", err)
			if h.onError != nil {
				h.onError(fmt.Errorf("edit: saving history: %w", err))
			}
		}
	}
}

func (h *history) add(s string) {
	if h.maxSize == 0 {
		h.maxSize = defaultHistoryMaxSize
	}
	if !h.allowDuplicates && h.entry(0) == s {
		debugPrintf("history: elide duplicate\n")
		return
	}
	if h.maxSize == -1 || len(h.entries) < h.maxSize {
		h.entries = append(h.entries, "")
	}
	h.head = (h.head + 1) % len(h.entries)
	h.entries[h.head] = s
	h.index = -1
}

// RemoveLast removes the most recently added entry, if any.
func (h *history) RemoveLast() {
	if len(h.entries) == 0 {
		return
	}
	i := h.entryIndex(0)
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	if h.head > 0 {
		h.head--
	} else {
		h.head = len(h.entries) - 1
	}
	h.index = -1
}

// Clear removes all history entries.
func (h *history) Clear() {
	h.entries = nil
	h.head = 0
	h.index = -1
}

// Len returns the number of history entries.
func (h *history) Len() int {
	return len(h.entries)
}

// Get returns the i'th entry, 0 being the most recently added.
func (h *history) Get(i int) (string, bool) {
	idx := h.entryIndex(i)
	if idx == -1 {
		return "", false
	}
	return h.entries[idx], true
}

// Search looks for pattern as a substring of an entry, walking from index
// from in the given direction (+1 toward older entries, i.e. increasing
// index; -1 toward newer entries, i.e. decreasing index), and returns the
// index of the first match.
func (h *history) Search(pattern string, from int, dir int) (int, bool) {
	if dir > 0 {
		for i := from; i < len(h.entries); i++ {
			if e, ok := h.Get(i); ok && strings.Contains(e, pattern) {
				return i, true
			}
		}
		return 0, false
	}
	for i := from; i >= 0; i-- {
		if e, ok := h.Get(i); ok && strings.Contains(e, pattern) {
			return i, true
		}
	}
	return 0, false
}

// Next saves the current history entry, advances to the next entry, and sets
// that entry as the input text. If history search is active, Next advances
// to the next forward search result.
func (h *history) Next(s *state) (bool, error) {
	if h.searchDir != 0 {
		return h.ForwardSearch(s)
	}
	if h.index == -1 {
		return false, nil
	}
	h.save(s.screen.Text())
	h.index--
	s.screen.MoveTo(0)
	s.screen.EraseTo(s.screen.End())
	s.screen.Insert([]rune(h.entry(h.index))...)
	return true, nil
}

// Previous saves the current history entry, advances to the previous history
// entry, and sets that entry as the input text. If history search is active,
// Previous advances to the next reverse search result.
func (h *history) Previous(s *state) (bool, error) {
	if h.searchDir != 0 {
		return h.ReverseSearch(s)
	}
	if h.index+1 >= len(h.entries) {
		return false, nil
	}
	h.save(s.screen.Text())
	h.index++
	s.screen.MoveTo(0)
	s.screen.EraseTo(s.screen.End())
	s.screen.Insert([]rune(h.entry(h.index))...)
	return true, nil
}

// AbortSearch resets the search key to the last search key which matched if
// the last search failed to match. Otherwise, cancels history search if
// active, restoring normal line editing.
func (h *history) AbortSearch(s *state) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if !h.searchMatched {
		h.searchKey = h.searchMatchedKey
		h.updateSearch(s, false /* advance */)
		return true, nil
	}
	return h.CancelSearch(s)
}

// CancelSearch cancels history search if active, restoring normal line
// editing.
func (h *history) CancelSearch(s *state) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	s.screen.SetSuffix(nil)
	h.searchDir = 0
	h.searchMatched = false
	h.searchKey = ""
	h.searchMatchedKey = ""
	return true, nil
}

// ForwardSearch starts history search if inactive, and switches to forward
// search.
func (h *history) ForwardSearch(s *state) (bool, error) {
	h.maybeInitSearch(s)
	h.searchDir = +1
	h.updateSearch(s, true /* advance */)
	return true, nil
}

// ReverseSearch starts history search if inactive, and switches to reverse
// search.
func (h *history) ReverseSearch(s *state) (bool, error) {
	h.maybeInitSearch(s)
	h.searchDir = -1
	h.updateSearch(s, true /* advance */)
	return true, nil
}

// AppendSearchKey appends the specified character to the search key.
func (h *history) AppendSearchKey(s *state, key rune) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if isPrintable(key) {
		h.searchKey += string(key)
		h.updateSearch(s, false /* advance */)
	}
	return true, nil
}

// TruncateSearchKey trims the last character from the search key.
func (h *history) TruncateSearchKey(s *state) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if len(h.searchKey) > 0 {
		_, size := utf8.DecodeLastRuneInString(h.searchKey)
		h.searchKey = h.searchKey[:len(h.searchKey)-size]
		h.updateSearch(s, false /* advance */)
	}
	return true, nil
}

// Dispatch processes the specified command. Non-history commands cause any
// history search to be aborted.
func (h *history) Dispatch(s *state, cmd command, key rune) (ok bool, err error) {
	if fn, ok := historyCommands[cmd]; ok {
		return fn(s, key)
	}
	if _, err := h.CancelSearch(s); err != nil {
		return true, err
	}
	return false, nil
}

func (h *history) String() string {
	var buf strings.Builder
	buf.WriteString("[")
	for i := range h.entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(h.entry(i))
	}
	buf.WriteString("]")
	return buf.String()
}

func (h *history) entry(n int) string {
	if n == -1 {
		return h.pending
	}
	i := h.entryIndex(n)
	if i == -1 {
		return ""
	}
	return h.entries[i]
}

func (h *history) entryIndex(n int) int {
	if n >= len(h.entries) {
		return -1
	}
	index := h.head - n
	if index < 0 {
		index += len(h.entries)
	}
	return index
}

func (h *history) save(cur []rune) {
	if h.index == -1 {
		h.pending = string(cur)
		return
	}
	index := h.entryIndex(h.index)
	if index == -1 {
		return
	}
	h.entries[index] = string(cur)
}

func (h *history) searchEntry(s *state, i int, advance bool) bool {
	var pos int
	entry := h.entry(i)
	key := h.searchKey
	haystack := entry
	if isLower(key) {
		key = strings.ToLower(key)
		haystack = strings.ToLower(entry)
	}

	switch h.searchDir {
	case +1:
		var n int
		if i == h.index {
			n = s.screen.Position()
			if advance {
				n++
			}
			if n > len(haystack) {
				n = len(haystack)
			}
		}
		pos = strings.Index(haystack[n:], key)
		if pos != -1 {
			pos += n
		}

	case -1:
		n := len(haystack)
		if i == h.index {
			n = s.screen.Position() + len(key)
			if advance {
				n--
			}
			if n < 0 {
				n = 0
			}
			if n > len(haystack) {
				n = len(haystack)
			}
		}
		pos = strings.LastIndex(haystack[:n], key)
	}

	if pos == -1 {
		return false
	}

	h.save(s.screen.Text())
	h.index = i
	s.screen.MoveTo(0)
	s.screen.EraseTo(s.screen.End())
	s.screen.Insert([]rune(entry)...)
	s.screen.SetAttrRange(pos, pos+len(h.searchKey), RoleEmphasis)
	s.screen.MoveTo(utf8.RuneCountInString(entry[:pos]))
	return true
}

// isLower reports whether s contains no uppercase letters, used to decide
// Emacs-style smart-case matching: an all-lowercase pattern matches
// case-insensitively, any other pattern matches case-sensitively.
func isLower(s string) bool {
	return s == strings.ToLower(s)
}

func (h *history) updateSearch(s *state, advance bool) {
	h.searchMatched = false
	if len(h.searchKey) > 0 {
		switch h.searchDir {
		case +1:
			for i := h.index; i >= -1; i-- {
				if h.searchEntry(s, i, advance) {
					h.searchMatched = true
					h.searchMatchedKey = h.searchKey
					break
				}
			}

		case -1:
			for i := h.index; i < len(h.entries); i++ {
				if h.searchEntry(s, i, advance) {
					h.searchMatched = true
					h.searchMatchedKey = h.searchKey
					break
				}
			}
		}
	}

	dir := "fwd"
	if h.searchDir < 0 {
		dir = "bck"
	}

	matched := "?"
	if len(h.searchKey) == 0 || h.searchMatched {
		matched = ":"
	}

	newSuffix := fmt.Sprintf("\n%s%s`%s'", dir, matched, h.searchKey)
	s.screen.SetSuffix([]rune(newSuffix))
	s.screen.SetSuffixAttr(RoleDiminish)
}

func (h *history) maybeInitSearch(s *state) {
	if h.searchDir != 0 {
		return
	}
	if len(h.entries) == 0 {
		h.index = -1
	}
	h.save(s.screen.Text())
	h.searchMatchedKey = ""
}
