package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nthbyte-dev/edit"
)

func init() {
	sort.Strings(sqlKeywords)
}

func highlight(line string) []edit.Highlight {
	var spans []edit.Highlight
	runes := []rune(line)
	for i := 0; i < len(runes); {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		word := strings.ToUpper(string(runes[i:j]))
		if n := sort.SearchStrings(sqlKeywords, word); n < len(sqlKeywords) && sqlKeywords[n] == word {
			spans = append(spans, edit.Highlight{From: i, To: j, Role: edit.RoleEmphasis})
		}
		i = j
	}
	return spans
}

func isWordRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func inputFinished(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasSuffix(text, ";")
}

func main() {
	fmt.Printf(`# command line demo
# - multi-line input terminated by a trailing semicolon
# - standard navigation and editing commands
# - history browsing (up/down) and incremental search (Control-r/Control-s)
# - kill ring (Control-k, Control-w, Control-y)
# - undo/redo (Control-_, Meta-_)
# - tab completion of SQL keywords, and of filenames after FROM
# - SQL keywords highlighted as you type
`)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".edit_demo_history")
	}

	fileCompleter := edit.CompleteFilename(os.DirFS("."))
	keywordCompleter := edit.WordCompleter(sqlKeywords)
	completer := func(line string, pos int) (edit.Completions, error) {
		runes := []rune(line)
		if pos <= len(runes) {
			before := strings.ToUpper(strings.TrimSpace(string(runes[:pos])))
			if strings.HasSuffix(before, "FROM") || strings.HasSuffix(before, "INTO") {
				return fileCompleter(line, pos)
			}
		}
		return keywordCompleter(line, pos)
	}

	p := edit.New(
		edit.WithCompleter(completer),
		edit.WithInputFinished(inputFinished),
		edit.WithHighlighter(highlight),
		edit.WithHistoryFile(historyPath, 500),
	)
	for {
		line, err := p.ReadLine("demo> ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("# %s\n", line)
	}
}

// NB: copied from github.com/cockroachdb/cockroach/pkg/sql/lexbase/keywords.go:KeywordNames.
var sqlKeywords = []string{
	"ABORT",
	"ACCESS",
	"ACTION",
	"ADD",
	"ADMIN",
	"AFTER",
	"AGGREGATE",
	"ALL",
	"ALTER",
	"ALWAYS",
	"ANALYSE",
	"ANALYZE",
	"AND",
	"ANNOTATE_TYPE",
	"ANY",
	"ARRAY",
	"AS",
	"ASC",
	"ASYMMETRIC",
	"AT",
	"ATTRIBUTE",
	"AUTHORIZATION",
	"BEGIN",
	"BETWEEN",
	"BIGINT",
	"BOOLEAN",
	"BOTH",
	"BY",
	"CASCADE",
	"CASE",
	"CAST",
	"CHAR",
	"CHARACTER",
	"CHECK",
	"COLLATE",
	"COLUMN",
	"COMMIT",
	"CONSTRAINT",
	"CREATE",
	"CROSS",
	"CURRENT",
	"CURSOR",
	"DATABASE",
	"DEFAULT",
	"DELETE",
	"DESC",
	"DISTINCT",
	"DROP",
	"ELSE",
	"END",
	"EXISTS",
	"EXPLAIN",
	"EXTRACT",
	"FALSE",
	"FETCH",
	"FILTER",
	"FLOAT",
	"FOR",
	"FOREIGN",
	"FROM",
	"FULL",
	"FUNCTION",
	"GRANT",
	"GROUP",
	"HAVING",
	"IF",
	"ILIKE",
	"IN",
	"INDEX",
	"INNER",
	"INSERT",
	"INT",
	"INTEGER",
	"INTERSECT",
	"INTO",
	"IS",
	"JOIN",
	"KEY",
	"LEFT",
	"LIKE",
	"LIMIT",
	"NOT",
	"NULL",
	"OFFSET",
	"ON",
	"OR",
	"ORDER",
	"OUTER",
	"PARTITION",
	"PRIMARY",
	"REFERENCES",
	"RIGHT",
	"ROLLBACK",
	"SCHEMA",
	"SELECT",
	"SET",
	"TABLE",
	"THEN",
	"TO",
	"TRANSACTION",
	"TRUE",
	"UNION",
	"UNIQUE",
	"UPDATE",
	"USING",
	"VALUES",
	"VARCHAR",
	"VIEW",
	"WHEN",
	"WHERE",
	"WITH",
}
