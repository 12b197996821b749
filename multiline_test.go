package edit

import "testing"

func TestIsBalanced(t *testing.T) {
	testCases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"select 1", true},
		{"select (1, 2)", true},
		{"select (1, 2", false},
		{"select ((1)", false},
		{"select '1", false},
		{"select '1'", true},
		{`select "a(b"`, true},
		{`line\`, false},
		{`line\\`, true},
		{`select (')')`, true},
	}
	for _, c := range testCases {
		if got := isBalanced(c.text); got != c.want {
			t.Errorf("isBalanced(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestContinuationIndent(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"select 1", ""},
		{"  foo(bar", "    "},
		{"a\n  select (x, (y", "      "},
		{"    done", "    "},
	}
	for _, c := range testCases {
		if got := continuationIndent(c.text); got != c.want {
			t.Errorf("continuationIndent(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
