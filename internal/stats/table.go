package stats

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/model"
)

type column struct {
	title string
	right bool
}

var charColumns = []column{
	{title: "Char"},
	{title: "Accuracy", right: true},
	{title: "Correct", right: true},
	{title: "Incorrect", right: true},
}

// charRows returns one row per character, weakest first.
func charRows(chars map[rune]model.CharTally) [][]string {
	rows := make([][]string, 0, len(chars))
	for _, ch := range rankChars(chars) {
		t := chars[ch]
		rows = append(rows, []string{
			CharLabel(ch),
			fmt.Sprintf("%.2f%%", tallyAccuracy(t)*100),
			fmt.Sprint(t.Correct),
			fmt.Sprint(t.Incorrect),
		})
	}
	return rows
}

// layoutColumns returns the header line followed by one line per row.
// Cells are padded to the widest entry of their column; missing cells are
// blank and extra cells are dropped.
func layoutColumns(cols []column, rows [][]string) []string {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := 0; i < min(len(row), len(cols)); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	line := func(cell func(i int) string) string {
		cells := make([]string, len(cols))
		for i, c := range cols {
			if c.right {
				cells[i] = runewidth.FillLeft(cell(i), widths[i])
			} else {
				cells[i] = runewidth.FillRight(cell(i), widths[i])
			}
		}
		return strings.Join(cells, " ")
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, line(func(i int) string { return cols[i].title }))
	for _, row := range rows {
		lines = append(lines, line(func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}))
	}
	return lines
}
