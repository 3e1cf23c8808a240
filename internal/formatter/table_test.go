package formatter

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTable(t *testing.T) {
	got := Table([]string{"src", "path"}, [][]string{{"a", "b"}})

	want := strings.Join([]string{
		"| src | path |",
		"| --- | ---- |",
		"| a   | b    |",
	}, "\n")

	if got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}

func TestTable_WideCharacters(t *testing.T) {
	got := Table([]string{"name", "n"}, [][]string{{"名前", "1"}, {"abcde", "2"}})

	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	width := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != width {
			t.Errorf("line %d display width = %d, want %d: %q", i, w, width, line)
		}
	}
}

func TestTable_RaggedAndEscaped(t *testing.T) {
	got := Table([]string{"a"}, [][]string{{"x|y", "extra"}, {"multi\nline"}})

	if !strings.Contains(got, `x\|y`) {
		t.Errorf("pipe not escaped: %q", got)
	}

	if strings.Count(got, "\n") != 3 {
		t.Errorf("cell newline leaked into table: %q", got)
	}

	header := "| a" + strings.Repeat(" ", 10) + "|" + strings.Repeat(" ", 7) + "|"
	if !strings.HasPrefix(got, header+"\n") {
		t.Errorf("missing header cell not padded: %q", got)
	}
}

func TestTable_Empty(t *testing.T) {
	if got := Table(nil, nil); got != "" {
		t.Errorf("Table(nil, nil) = %q, want empty", got)
	}
}
