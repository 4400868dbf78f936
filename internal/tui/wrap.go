package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/theme"
)

// styledRune is one rendered text position.
type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// wrongSpace stands in for a space that was mistyped, so the miss stays
// visible.
const wrongSpace = '•'

func buildStyledRunes(text []rune, cursor int, marks []session.Mark, st theme.Styles) []styledRune {
	wordStart, wordEnd, hasWord := activeWord(text, cursor)

	out := make([]styledRune, len(text))
	for i, target := range text {
		shown, style := target, st.Pending
		mark := session.MarkNone
		if i < len(marks) {
			mark = marks[i]
		}
		switch {
		case i == cursor:
			style = st.Cursor
		case mark == session.MarkCorrect:
			style = st.Correct
		case mark == session.MarkIncorrect:
			style = st.Incorrect
		case hasWord && i >= wordStart && i < wordEnd:
			style = st.Text
		}
		if mark == session.MarkIncorrect && target == ' ' {
			shown = wrongSpace
		}
		out[i] = styledRune{
			s:       style.Render(string(shown)),
			width:   runewidth.RuneWidth(shown),
			isSpace: target == ' ',
		}
	}
	return out
}

// activeWord returns the bounds of the word under the cursor. On a space
// the next word is used, and past the end the last one. ok is false when
// the text has no words.
func activeWord(text []rune, cursor int) (start, end int, ok bool) {
	start = max(cursor, 0)
	for start < len(text) && text[start] == ' ' {
		start++
	}
	if start >= len(text) {
		start = len(text)
		for start > 0 && text[start-1] == ' ' {
			start--
		}
		if start == 0 {
			return 0, 0, false
		}
		start--
	}
	for start > 0 && text[start-1] != ' ' {
		start--
	}
	end = start
	for end < len(text) && text[end] != ' ' {
		end++
	}
	return start, end, true
}

// layoutLines splits runes into lines no wider than width. A line ends at
// its last space, which is dropped; a word longer than the line is cut
// where it overflows.
func layoutLines(runes []styledRune, width int) [][]styledRune {
	if width <= 0 {
		return [][]styledRune{runes}
	}
	var lines [][]styledRune
	start, used, lastSpace := 0, 0, -1
	for i := 0; i < len(runes); {
		if used+runes[i].width > width && i > start {
			cut, next := i, i
			if lastSpace >= start {
				cut, next = lastSpace, lastSpace+1
			}
			lines = append(lines, runes[start:cut])
			start, lastSpace = next, -1
			used = 0
			for _, r := range runes[start:i] {
				used += r.width
			}
			continue
		}
		if runes[i].isSpace {
			lastSpace = i
		}
		used += runes[i].width
		i++
	}
	return append(lines, runes[start:])
}

func renderLines(lines [][]styledRune) string {
	var b strings.Builder
	for n, line := range lines {
		if n > 0 {
			b.WriteByte('\n')
		}
		for _, r := range line {
			b.WriteString(r.s)
		}
	}
	return b.String()
}
