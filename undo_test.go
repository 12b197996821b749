package edit

import "testing"

func newTestState() *state {
	s := &state{}
	s.screen.Init()
	s.screen.Reset(nil)
	return s
}

func TestUndoCoalescesInsertRun(t *testing.T) {
	s := newTestState()

	s.undo.recordInsert(s, s.screen.Position(), "a", insertRunEdit)
	s.screen.Insert('a')
	s.undo.recordInsert(s, s.screen.Position(), "b", insertRunEdit)
	s.screen.Insert('b')
	s.undo.recordInsert(s, s.screen.Position(), "c", insertRunEdit)
	s.screen.Insert('c')

	if got := string(s.screen.Text()); got != "abc" {
		t.Fatalf("Text() = %q, want %q", got, "abc")
	}

	// The three insertRunEdit records coalesce into a single undo step, so one
	// undo reverts the whole run.
	s.undo.undo(s)
	if got := string(s.screen.Text()); got != "" {
		t.Fatalf("after undo, Text() = %q, want %q", got, "")
	}

	s.undo.redo(s)
	if got := string(s.screen.Text()); got != "abc" {
		t.Fatalf("after redo, Text() = %q, want %q", got, "abc")
	}
}

func TestUndoStructuralAlwaysStartsNewStep(t *testing.T) {
	s := newTestState()

	s.undo.recordInsert(s, s.screen.Position(), "a", insertRunEdit)
	s.screen.Insert('a')
	s.undo.recordStructural(s)
	s.screen.Insert('b')
	s.undo.recordStructural(s)
	s.screen.Insert('c')

	if got := string(s.screen.Text()); got != "abc" {
		t.Fatalf("Text() = %q, want %q", got, "abc")
	}

	s.undo.undo(s)
	if got := string(s.screen.Text()); got != "ab" {
		t.Fatalf("after first undo, Text() = %q, want %q", got, "ab")
	}
	s.undo.undo(s)
	if got := string(s.screen.Text()); got != "a" {
		t.Fatalf("after second undo, Text() = %q, want %q", got, "a")
	}
	s.undo.undo(s)
	if got := string(s.screen.Text()); got != "" {
		t.Fatalf("after third undo, Text() = %q, want %q", got, "")
	}
}

func TestUndoNoOpWhenEmpty(t *testing.T) {
	s := newTestState()
	s.undo.undo(s)
	if got := string(s.screen.Text()); got != "" {
		t.Fatalf("undo on empty stack mutated text: %q", got)
	}
	s.undo.redo(s)
	if got := string(s.screen.Text()); got != "" {
		t.Fatalf("redo on empty stack mutated text: %q", got)
	}
}
