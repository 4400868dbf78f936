package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/theme"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	st := theme.Light.Styles()
	marks := []session.Mark{session.MarkCorrect, session.MarkNone}

	runes := buildStyledRunes([]rune("ab"), 1, marks, st)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != st.Correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != st.Cursor.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	st := theme.Light.Styles()
	marks := []session.Mark{session.MarkCorrect, session.MarkIncorrect}

	runes := buildStyledRunes([]rune("ab"), 2, marks, st)
	if runes[0].s != st.Correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != st.Incorrect.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	st := theme.Dark.Styles()
	marks := make([]session.Mark, len("one two"))
	marks[0] = session.MarkCorrect

	runes := buildStyledRunes([]rune("one two"), 1, marks, st)
	if runes[0].s != st.Correct.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != st.Text.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != st.Pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	st := theme.Light.Styles()
	marks := []session.Mark{session.MarkCorrect, session.MarkIncorrect, session.MarkNone}

	runes := buildStyledRunes([]rune("a b"), 2, marks, st)
	if runes[1].s != st.Incorrect.Render(string(wrongSpace)) {
		t.Fatalf("expected dot for wrong space")
	}
}

func TestBuildStyledRunesFollowTheme(t *testing.T) {
	marks := []session.Mark{session.MarkCorrect}
	light := buildStyledRunes([]rune("a"), -1, marks, theme.Light.Styles())
	dark := buildStyledRunes([]rune("a"), -1, marks, theme.Dark.Styles())
	if light[0].s != theme.Light.Styles().Correct.Render("a") || dark[0].s != theme.Dark.Styles().Correct.Render("a") {
		t.Fatalf("marks must keep their meaning across themes")
	}
}

func TestLayoutLinesBreaksAtSpaces(t *testing.T) {
	st := theme.Light.Styles()
	text := []rune("sad dad fad")
	runes := buildStyledRunes(text, -1, nil, st)
	lines := layoutLines(runes, 8)
	if len(lines) != 2 || len(lines[0]) != 7 || len(lines[1]) != 3 {
		t.Fatalf("expected \"sad dad\" and \"fad\", got %d lines", len(lines))
	}
	if got := strings.Count(renderLines(lines), "\n"); got != 1 {
		t.Fatalf("expected one line break, got %d", got)
	}
}

func TestLayoutLinesCutsLongWords(t *testing.T) {
	runes := buildStyledRunes([]rune("abcdefg hi"), -1, nil, theme.Light.Styles())
	lines := layoutLines(runes, 4)
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = len(line)
	}
	want := []int{4, 3, 2}
	if len(widths) != len(want) {
		t.Fatalf("expected line lengths %v, got %v", want, widths)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("expected line lengths %v, got %v", want, widths)
		}
	}
}

func TestLayoutLinesWithoutWidth(t *testing.T) {
	runes := buildStyledRunes([]rune("sad dad"), -1, nil, theme.Light.Styles())
	if lines := layoutLines(runes, 0); len(lines) != 1 || len(lines[0]) != 7 {
		t.Fatalf("expected a single line")
	}
}

func TestActiveWord(t *testing.T) {
	text := []rune("one two  ")
	cases := []struct {
		cursor     int
		start, end int
	}{
		{-1, 0, 3},
		{0, 0, 3},
		{2, 0, 3},
		{3, 4, 7},
		{5, 4, 7},
		{8, 4, 7},
		{20, 4, 7},
	}
	for _, tc := range cases {
		start, end, ok := activeWord(text, tc.cursor)
		if !ok || start != tc.start || end != tc.end {
			t.Fatalf("cursor %d: expected [%d,%d), got [%d,%d) ok=%v", tc.cursor, tc.start, tc.end, start, end, ok)
		}
	}
	if _, _, ok := activeWord([]rune("   "), 1); ok {
		t.Fatalf("blank text has no word")
	}
}
