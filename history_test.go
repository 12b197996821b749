package edit

import "testing"

func TestHistoryAddGet(t *testing.T) {
	h := &history{}
	h.Add("a")
	h.Add("b")
	h.Add("c")

	if got := h.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	cases := []struct {
		i    int
		want string
		ok   bool
	}{
		{0, "c", true},
		{1, "b", true},
		{2, "a", true},
		{3, "", false},
	}
	for _, c := range cases {
		got, ok := h.Get(c.i)
		if got != c.want || ok != c.ok {
			t.Errorf("Get(%d) = %q,%v, want %q,%v", c.i, got, ok, c.want, c.ok)
		}
	}
}

func TestHistoryAddElidesAdjacentDuplicate(t *testing.T) {
	h := &history{}
	h.Add("a")
	h.Add("a")
	if got := h.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1 (duplicate should be elided)", got)
	}
}

func TestHistoryAddAllowDuplicates(t *testing.T) {
	h := &history{allowDuplicates: true}
	h.Add("a")
	h.Add("a")
	if got := h.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2 (duplicates allowed)", got)
	}
}

func TestHistoryNavigation(t *testing.T) {
	s := newTestState()
	h := &history{}
	h.Add("a")
	h.Add("b")
	h.Add("c")

	if _, err := h.Previous(s); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if got := string(s.screen.Text()); got != "c" {
		t.Fatalf("after first Previous, Text() = %q, want %q", got, "c")
	}

	if _, err := h.Previous(s); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if got := string(s.screen.Text()); got != "b" {
		t.Fatalf("after second Previous, Text() = %q, want %q", got, "b")
	}

	if _, err := h.Next(s); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got := string(s.screen.Text()); got != "c" {
		t.Fatalf("after Next, Text() = %q, want %q", got, "c")
	}
}

func TestHistoryNavigationStopsAtEnds(t *testing.T) {
	s := newTestState()
	h := &history{}
	h.Add("a")

	ok, err := h.Next(s)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Fatalf("Next() = true with no newer entry to move to, want false")
	}

	if _, err := h.Previous(s); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	ok, err = h.Previous(s)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if ok {
		t.Fatalf("Previous() = true past the oldest entry, want false")
	}
}

func TestHistorySearch(t *testing.T) {
	h := &history{}
	h.Add("a")
	h.Add("b")
	h.Add("c")

	if i, ok := h.Search("b", 0, +1); !ok || i != 1 {
		t.Fatalf("Search(%q, 0, +1) = %d,%v, want 1,true", "b", i, ok)
	}
	if i, ok := h.Search("a", 2, -1); !ok || i != 2 {
		t.Fatalf("Search(%q, 2, -1) = %d,%v, want 2,true", "a", i, ok)
	}
	if _, ok := h.Search("nope", 0, +1); ok {
		t.Fatalf("Search(%q, 0, +1) matched, want no match", "nope")
	}
}

func TestHistoryClear(t *testing.T) {
	h := &history{}
	h.Add("a")
	h.Add("b")
	h.Clear()
	if got := h.Len(); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}
	if _, ok := h.Get(0); ok {
		t.Fatalf("Get(0) after Clear = ok, want not ok")
	}
}

func TestHistoryRemoveLast(t *testing.T) {
	h := &history{}
	h.Add("a")
	h.Add("b")
	h.RemoveLast()
	if got := h.Len(); got != 1 {
		t.Fatalf("Len() after RemoveLast = %d, want 1", got)
	}
	got, ok := h.Get(0)
	if !ok || got != "a" {
		t.Fatalf("Get(0) after RemoveLast = %q,%v, want %q,true", got, ok, "a")
	}
}
