package edit

import (
	"fmt"
	"strings"
)

// escapeEntry encodes a history entry for storage as a single line: a literal
// newline becomes the two bytes `\n`, and a literal backslash becomes `\\`.
// This is narrower than the teacher's original libedit vis-encoding (which
// escaped every control and whitespace byte with octal sequences) but is
// exactly the format the history file spec calls for.
func escapeEntry(s string) string {
	if !strings.ContainsAny(s, "\\\n") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// unescapeEntry reverses escapeEntry. An unrecognized escape (anything other
// than \\ or \n) is an error: the history file is corrupt or was written by
// an incompatible version.
func unescapeEntry(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var buf strings.Builder
	buf.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("edit: truncated escape at end of history entry")
		}
		switch s[i] {
		case '\\':
			buf.WriteByte('\\')
		case 'n':
			buf.WriteByte('\n')
		default:
			return "", fmt.Errorf("edit: invalid history escape %q", s[i])
		}
	}
	return buf.String(), nil
}
