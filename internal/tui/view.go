package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/stats"
)

const (
	contentRatio  = 0.70
	maxModalWidth = 60
)

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenCustomTime:
		body = m.renderModal("Custom Time", "Enter the session length in seconds.")
	case screenCustomKeys:
		body = m.renderModal("Custom Keys", keysHint())
	case screenGame:
		body = m.renderGame()
	case screenResults:
		body = m.renderResults()
	default:
		body = m.renderMenu()
	}
	footer := m.styles.StatusLine.Render(m.help.View(m.helpKeys()))
	return m.place(body, footer)
}

// place centres body on a background filled with the theme colour and
// pins footer to the last line.
func (m *Model) place(body, footer string) string {
	if m.width == 0 || m.height == 0 {
		return body + "\n" + footer
	}
	bg := lipgloss.WithWhitespaceBackground(m.theme.Palette().Background)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body, bg)
	}
	main := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body, bg)
	bottom := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer, bg)
	return main + "\n" + bottom
}

func (m *Model) renderMenu() string {
	lines := []string{
		m.styles.Title.Render("keydrill"),
		m.styles.Muted.Render(fmt.Sprintf("Keys: %s  Theme: %s", m.ctrl.Keys(), m.theme)),
		"",
	}
	for i, label := range menuLabels {
		style := m.styles.Button
		if i == m.menuIndex {
			style = m.styles.Selected
		}
		lines = append(lines, style.Render(label))
	}
	if m.notice != "" {
		lines = append(lines, "", m.styles.Muted.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderModal(title, hint string) string {
	body := []string{
		m.styles.CardValue.Render(title),
		m.input.View(),
		m.styles.Muted.Render(hint),
	}
	if m.inputErr != "" {
		body = append(body, m.styles.Error.Render(m.inputErr))
	}
	return m.styles.Card.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
}

func keysHint() string {
	return fmt.Sprintf("Letters to practise, up to %d. Empty input keeps the current keys.", inputCharLimit)
}

func modalWidth(width int) int {
	if width <= 0 {
		return maxModalWidth
	}
	return max(20, min(maxModalWidth, width-4))
}

func (m *Model) renderGame() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricCard("Time", strings.TrimPrefix(m.clock, "Time: ")),
		m.metricCard("WPM", fmt.Sprintf("%d", m.wpm)),
		m.metricCard("Accuracy", fmt.Sprintf("%.1f%%", m.accuracy)),
	)
	styled := buildStyledRunes(m.text, m.cursor, m.marks, m.styles)
	text := renderLines(layoutLines(styled, 0))
	if m.width > 0 {
		contentWidth := max(1, int(float64(m.width)*contentRatio))
		text = lipgloss.NewStyle().Width(contentWidth).Render(renderLines(layoutLines(styled, contentWidth)))
	}
	return lipgloss.JoinVertical(lipgloss.Center, cards, "", text)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.styles.CardLabel.Render(label), m.styles.CardValue.Render(value))
	return m.styles.Card.Render(content)
}

func (m *Model) renderResults() string {
	r := m.results
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricCard("WPM", fmt.Sprintf("%d", r.WPM)),
		m.metricCard("Accuracy", fmt.Sprintf("%.1f%%", r.Accuracy)),
		m.metricCard("Time", stats.FormatClock(r.Elapsed)),
	)
	lines := []string{m.styles.Title.Render("Results"), cards}
	if len(r.Trend) > 1 {
		lines = append(lines, m.styles.Muted.Render("WPM trend ")+m.styles.Text.Render(stats.Sparkline(r.Trend)))
	}
	if len(r.Weak) > 0 {
		labels := make([]string, 0, len(r.Weak))
		for _, ch := range r.Weak {
			labels = append(labels, stats.CharLabel(ch))
		}
		lines = append(lines, m.styles.Muted.Render("Weakest keys ")+m.styles.Incorrect.Render(strings.Join(labels, " ")))
	}

	buttons := make([]string, 0, 2)
	for i, label := range []string{"Menu", "Exit"} {
		style := m.styles.Button
		if i == m.resultIndex {
			style = m.styles.Selected
		}
		buttons = append(buttons, style.Render(label))
	}
	lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top, buttons[0], " ", buttons[1]))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
