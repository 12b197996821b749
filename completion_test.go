package edit

import (
	"testing"
	"testing/fstest"
)

func TestWordCompleterPrefixMatch(t *testing.T) {
	words := []string{"apple", "banana", "apricot"}
	completer := WordCompleter(words)

	got, err := completer("ap", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ReplaceAt != 0 || got.ReplaceTo != 2 {
		t.Fatalf("ReplaceAt,ReplaceTo = %d,%d, want 0,2", got.ReplaceAt, got.ReplaceTo)
	}
	var values []string
	for _, c := range got.Candidates {
		values = append(values, c.Value)
	}
	want := []string{"apple", "apricot"}
	if !stringsEqual(values, want) {
		t.Fatalf("Candidates = %v, want %v", values, want)
	}
}

func TestWordCompleterMidLine(t *testing.T) {
	words := []string{"select", "set"}
	completer := WordCompleter(words)

	got, err := completer("se x", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ReplaceAt != 0 || got.ReplaceTo != 2 {
		t.Fatalf("ReplaceAt,ReplaceTo = %d,%d, want 0,2", got.ReplaceAt, got.ReplaceTo)
	}
	var values []string
	for _, c := range got.Candidates {
		values = append(values, c.Value)
	}
	want := []string{"select", "set"}
	if !stringsEqual(values, want) {
		t.Fatalf("Candidates = %v, want %v", values, want)
	}
}

func TestWordCompleterNoMatch(t *testing.T) {
	completer := WordCompleter([]string{"apple", "banana"})
	got, err := completer("zz", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Candidates) != 0 {
		t.Fatalf("Candidates = %v, want none", got.Candidates)
	}
}

func TestCompleteFilename(t *testing.T) {
	fsys := fstest.MapFS{
		"report.txt":    &fstest.MapFile{},
		"results.csv":   &fstest.MapFile{},
		"reports/a.txt": &fstest.MapFile{},
	}
	completer := CompleteFilename(fsys)

	line := "load rep"
	got, err := completer(line, len(line))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ReplaceAt != 5 || got.ReplaceTo != len(line) {
		t.Fatalf("ReplaceAt,ReplaceTo = %d,%d, want 5,%d", got.ReplaceAt, got.ReplaceTo, len(line))
	}

	var values []string
	for _, c := range got.Candidates {
		values = append(values, c.Value)
	}
	want := []string{"report.txt", "reports/"}
	if !stringsEqual(values, want) {
		t.Fatalf("Candidates = %v, want %v", values, want)
	}
}

func TestCompleteFilenameNoSuchDir(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt": &fstest.MapFile{},
	}
	completer := CompleteFilename(fsys)
	line := "load missing/f"
	got, err := completer(line, len(line))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Candidates) != 0 {
		t.Fatalf("Candidates = %v, want none", got.Candidates)
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
