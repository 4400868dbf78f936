// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/controller"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
	"github.com/verte-zerg/keydrill/internal/theme"
)

type screen int

const (
	screenMenu screen = iota
	screenCustomTime
	screenCustomKeys
	screenGame
	screenResults
)

type menuItem int

const (
	itemOneMinute menuItem = iota
	itemFiveMinutes
	itemCustomTime
	itemFreeplay
	itemCustomKeys
	itemResetKeys
	itemTheme
	itemExit
)

var menuLabels = [...]string{
	itemOneMinute:   "1 Minute",
	itemFiveMinutes: "5 Minutes",
	itemCustomTime:  "Custom Time",
	itemFreeplay:    "Freeplay",
	itemCustomKeys:  "Custom Keys",
	itemResetKeys:   "Reset Keys",
	itemTheme:       "Toggle Theme",
	itemExit:        "Exit",
}

const (
	resultMenu = iota
	resultExit
)

// inputCharLimit bounds both entry fields; the keys hint states it.
const inputCharLimit = 256

const (
	msgInvalidSeconds  = "Please enter a valid number of seconds."
	msgPositiveSeconds = "Please enter a positive number of seconds."
)

// tickMsg carries the token of the timer that fired.
type tickMsg struct {
	token controller.TimerToken
}

func tick(tok controller.TimerToken) tea.Cmd {
	return tea.Tick(controller.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{token: tok}
	})
}

// Options configures the UI.
type Options struct {
	Theme  theme.Name
	Logger *slog.Logger
}

// Model implements the Bubble Tea UI and the controller's Display.
type Model struct {
	ctrl   *controller.Controller
	logger *slog.Logger
	keys   keyMap
	help   help.Model

	theme  theme.Name
	styles theme.Styles

	width  int
	height int

	screen      screen
	menuIndex   int
	resultIndex int
	notice      string

	input    textinput.Model
	inputErr string

	text   []rune
	cursor int
	marks  []session.Mark

	clock    string
	wpm      int
	accuracy float64

	results stats.Results
}

// NewModel builds the UI and registers it as the controller's display.
func NewModel(ctrl *controller.Controller, opts Options) *Model {
	name := opts.Theme
	if name == "" {
		name = theme.Default
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		ctrl:     ctrl,
		logger:   logger,
		keys:     newKeyMap(),
		help:     help.New(),
		theme:    name,
		styles:   name.Styles(),
		input:    newInput(),
		clock:    "Time: 00:00",
		accuracy: 100,
	}
	ctrl.SetDisplay(m)
	return m
}

func newInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = inputCharLimit
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Render implements controller.Display.
func (m *Model) Render(text []rune, cursor int, marks []session.Mark) {
	m.text = text
	m.cursor = cursor
	m.marks = marks
}

// RenderStats implements controller.Display.
func (m *Model) RenderStats(clock string, wpm int, accuracy float64) {
	m.clock = clock
	m.wpm = wpm
	m.accuracy = accuracy
}

// RenderResults implements controller.Display.
func (m *Model) RenderResults(r stats.Results) {
	m.results = r
	m.resultIndex = resultMenu
	m.screen = screenResults
}

// Results returns the results of the last timed session, if any finished.
func (m *Model) Results() (stats.Results, bool) {
	return m.ctrl.LastResults()
}

// Theme returns the active theme.
func (m *Model) Theme() theme.Name {
	return m.theme
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		next, ok := m.ctrl.OnTick(msg.token)
		if !ok {
			return m, nil
		}
		return m, tick(next)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.ctrl.EndToMenu()
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenCustomTime, screenCustomKeys:
			return m.updateInput(msg)
		case screenGame:
			return m.updateGame(msg)
		case screenResults:
			return m.updateResults(msg)
		}
	}
	if m.screen == screenCustomTime || m.screen == screenCustomKeys {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuIndex = (m.menuIndex - 1 + len(menuLabels)) % len(menuLabels)
	case key.Matches(msg, m.keys.Down):
		m.menuIndex = (m.menuIndex + 1) % len(menuLabels)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Select):
		return m.activate(menuItem(m.menuIndex))
	}
	return m, nil
}

func (m *Model) activate(item menuItem) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch item {
	case itemOneMinute:
		m.ctrl.SelectMode(model.ModeOneMinute)
		return m.begin()
	case itemFiveMinutes:
		m.ctrl.SelectMode(model.ModeFiveMinutes)
		return m.begin()
	case itemFreeplay:
		m.ctrl.SelectMode(model.ModeFreeplay)
		return m.begin()
	case itemCustomTime:
		return m, m.openInput(screenCustomTime, "Seconds: ", "")
	case itemCustomKeys:
		return m, m.openInput(screenCustomKeys, "Keys: ", m.ctrl.Keys())
	case itemResetKeys:
		m.ctrl.ResetKeys()
		m.notice = "Keys reset to " + m.ctrl.Keys()
	case itemTheme:
		m.toggleTheme()
	case itemExit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) begin() (tea.Model, tea.Cmd) {
	tok, err := m.ctrl.Begin()
	if err != nil {
		m.logger.Error("session start failed", slog.Any("error", err))
		m.notice = err.Error()
		m.screen = screenMenu
		return m, nil
	}
	m.screen = screenGame
	return m, tick(tok)
}

func (m *Model) openInput(s screen, prompt, value string) tea.Cmd {
	m.screen = s
	m.inputErr = ""
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.inputErr = ""
	m.screen = screenMenu
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if m.screen == screenCustomTime {
			return m.submitCustomTime()
		}
		return m.submitCustomKeys()
	case m.screen == screenCustomKeys && key.Matches(msg, m.keys.Reset):
		m.ctrl.ResetKeys()
		m.input.SetValue(m.ctrl.Keys())
		m.input.CursorEnd()
		m.inputErr = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitCustomTime() (tea.Model, tea.Cmd) {
	seconds, problem := parseSeconds(m.input.Value())
	if problem != "" {
		m.inputErr = problem
		return m, nil
	}
	mode, err := model.CustomMode(seconds)
	if err != nil {
		m.inputErr = err.Error()
		return m, nil
	}
	m.closeInput()
	m.ctrl.SelectMode(mode)
	return m.begin()
}

// parseSeconds returns the entered number of seconds, or the message
// explaining why the input was rejected.
func parseSeconds(raw string) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, msgInvalidSeconds
	}
	if n <= 0 {
		return 0, msgPositiveSeconds
	}
	return n, ""
}

// submitCustomKeys applies the entered key set. Blank input keeps the
// current keys.
func (m *Model) submitCustomKeys() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.closeInput()
		return m, nil
	}
	if err := m.ctrl.Configure(value); err != nil {
		m.inputErr = err.Error()
		return m, nil
	}
	m.closeInput()
	m.notice = "Keys set to " + m.ctrl.Keys()
	return m, nil
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.EndToMenu()
		m.screen = screenMenu
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	}
	for _, k := range rawKeys(msg) {
		m.ctrl.OnKey(k)
	}
	return m, nil
}

// rawKeys converts a terminal key event into session keys. Pasted input
// arrives as several runes in one event.
func rawKeys(msg tea.KeyMsg) []session.RawKey {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return []session.RawKey{session.KeyBackspace}
	case tea.KeySpace:
		return []session.RawKey{session.KeySpace}
	case tea.KeyRunes:
		out := make([]session.RawKey, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, session.KeyRune(r))
		}
		return out
	}
	return nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.resultIndex = 1 - m.resultIndex
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Back):
		m.toMenu()
	case key.Matches(msg, m.keys.Select):
		if m.resultIndex == resultExit {
			return m, tea.Quit
		}
		m.toMenu()
	}
	return m, nil
}

func (m *Model) toMenu() {
	m.ctrl.EndToMenu()
	m.screen = screenMenu
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = m.theme.Styles()
	m.logger.Debug("theme toggled", slog.String("theme", string(m.theme)))
}
