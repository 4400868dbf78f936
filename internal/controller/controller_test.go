package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
)

type fakeDisplay struct {
	renders []string
	cursors []int
	clocks  []string
	wpms    []int
	accs    []float64
	results []stats.Results
}

func (d *fakeDisplay) Render(text []rune, cursor int, _ []session.Mark) {
	d.renders = append(d.renders, string(text))
	d.cursors = append(d.cursors, cursor)
}

func (d *fakeDisplay) RenderStats(clock string, wpm int, accuracy float64) {
	d.clocks = append(d.clocks, clock)
	d.wpms = append(d.wpms, wpm)
	d.accs = append(d.accs, accuracy)
}

func (d *fakeDisplay) RenderResults(r stats.Results) {
	d.results = append(d.results, r)
}

type fixedSource string

func (s fixedSource) Next(string) string { return string(s) }

type harness struct {
	ctrl    *Controller
	display *fakeDisplay
	now     time.Time
}

func newHarness(t *testing.T, text string, opts ...Option) *harness {
	t.Helper()
	h := &harness{display: &fakeDisplay{}, now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return h.now }
	sess := session.New(fixedSource(text), clock)
	opts = append([]Option{WithClock(clock), WithLogger(logging.Discard())}, opts...)
	h.ctrl = New(sess, h.display, opts...)
	return h
}

func (h *harness) advance(d time.Duration) { h.now = h.now.Add(d) }

func TestBeginRendersAndIssuesToken(t *testing.T) {
	h := newHarness(t, "sad ")
	require.NoError(t, h.ctrl.Configure("asdf"))

	tok, err := h.ctrl.Begin()
	require.NoError(t, err)
	assert.NotZero(t, tok)
	assert.Equal(t, 1, h.ctrl.PendingTimers())
	assert.Equal(t, []string{"sad "}, h.display.renders)
	assert.Equal(t, []string{"Time: 00:00"}, h.display.clocks)
	assert.NotEmpty(t, h.ctrl.SessionID())
	assert.Equal(t, session.Running, h.ctrl.Session().State())
}

func TestBeginWithoutDisplay(t *testing.T) {
	sess := session.New(fixedSource("sad "), nil)
	ctrl := New(sess, nil, WithLogger(logging.Discard()))
	_, err := ctrl.Begin()
	require.ErrorIs(t, err, ErrNoDisplay)
	assert.Equal(t, session.Idle, sess.State())
}

func TestConfigureRejectsEmptyKeys(t *testing.T) {
	h := newHarness(t, "sad ")
	require.NoError(t, h.ctrl.Configure("asdf"))
	_, err := h.ctrl.Begin()
	require.NoError(t, err)

	err = h.ctrl.Configure("   ")
	require.True(t, errors.Is(err, model.ErrEmptyKeys))
	assert.Equal(t, "asdf", h.ctrl.Keys())
	assert.Equal(t, "asdf", h.ctrl.Session().Keys())
	assert.Equal(t, session.Running, h.ctrl.Session().State())
}

func TestResetKeys(t *testing.T) {
	h := newHarness(t, "sad ", WithKeys("jk"))
	assert.Equal(t, "jk", h.ctrl.Keys())
	h.ctrl.ResetKeys()
	assert.Equal(t, model.DefaultKeys, h.ctrl.Keys())
}

func TestOnKeyRendersAndRefreshesStats(t *testing.T) {
	h := newHarness(t, "sad ")
	_, err := h.ctrl.Begin()
	require.NoError(t, err)
	renders, statsCalls := len(h.display.renders), len(h.display.clocks)

	out := h.ctrl.OnKey(session.KeyRune('s'))
	assert.Equal(t, session.OutcomeCorrect, out.Kind)
	assert.Len(t, h.display.renders, renders+1)
	assert.Len(t, h.display.clocks, statsCalls+1)
	assert.Equal(t, 1, h.display.cursors[len(h.display.cursors)-1])

	out = h.ctrl.OnKey(session.RawKey{Sym: "Shift_L"})
	assert.Equal(t, session.OutcomeIgnored, out.Kind)
	assert.Len(t, h.display.renders, renders+1, "ignored keys do not redraw")
}

func TestOnKeyRegenerationRedraws(t *testing.T) {
	h := newHarness(t, "sa")
	require.NoError(t, h.ctrl.Configure("as"))
	_, err := h.ctrl.Begin()
	require.NoError(t, err)

	h.ctrl.OnKey(session.KeyRune('s'))
	out := h.ctrl.OnKey(session.KeyRune('a'))
	assert.True(t, out.Regenerated)
	assert.Equal(t, 0, h.display.cursors[len(h.display.cursors)-1])
	assert.Equal(t, 2, h.ctrl.Session().Stats().CorrectKeystrokes)
}

func TestTickLoopInFreeplay(t *testing.T) {
	h := newHarness(t, "sad ")
	tok, err := h.ctrl.Begin()
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		h.advance(time.Second)
		next, ok := h.ctrl.OnTick(tok)
		require.True(t, ok)
		require.NotEqual(t, tok, next)
		tok = next
		assert.Equal(t, 1, h.ctrl.PendingTimers())
	}
	assert.Equal(t, "Time: 00:03", h.display.clocks[len(h.display.clocks)-1])
	assert.Empty(t, h.display.results)
}

func TestStaleTokenIgnored(t *testing.T) {
	h := newHarness(t, "sad ")
	first, err := h.ctrl.Begin()
	require.NoError(t, err)
	h.advance(time.Second)
	_, ok := h.ctrl.OnTick(first)
	require.True(t, ok)
	statsCalls := len(h.display.clocks)

	_, ok = h.ctrl.OnTick(first)
	assert.False(t, ok, "a consumed token must not fire twice")
	_, ok = h.ctrl.OnTick(TimerToken(9999))
	assert.False(t, ok)
	assert.Len(t, h.display.clocks, statsCalls)
	assert.Equal(t, 1, h.ctrl.PendingTimers())
}

func TestBeginCancelsPreviousTimers(t *testing.T) {
	h := newHarness(t, "sad ")
	old, err := h.ctrl.Begin()
	require.NoError(t, err)
	fresh, err := h.ctrl.Begin()
	require.NoError(t, err)

	_, ok := h.ctrl.OnTick(old)
	assert.False(t, ok)
	_, ok = h.ctrl.OnTick(fresh)
	assert.True(t, ok)
}

func TestTimedSessionExpiresOnce(t *testing.T) {
	h := newHarness(t, "sad ", WithMode(model.Mode{Kind: model.Custom, Seconds: 3}))
	require.NoError(t, h.ctrl.Configure("asdf"))
	tok, err := h.ctrl.Begin()
	require.NoError(t, err)
	assert.Equal(t, "Time: 00:03", h.display.clocks[0])

	for _, r := range "sax" {
		h.ctrl.OnKey(session.KeyRune(r))
	}

	var ok bool
	for i := 0; i < 3; i++ {
		h.advance(time.Second)
		stale := tok
		tok, ok = h.ctrl.OnTick(tok)
		if !ok {
			_, again := h.ctrl.OnTick(stale)
			assert.False(t, again)
			break
		}
	}
	assert.False(t, ok)
	require.Len(t, h.display.results, 1)
	assert.Equal(t, 0, h.ctrl.PendingTimers())
	assert.Equal(t, session.Finished, h.ctrl.Session().State())

	res := h.display.results[0]
	assert.Equal(t, 3*time.Second, res.Elapsed)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 3, res.Total)
	assert.InDelta(t, 66.666, res.Accuracy, 0.01)
	assert.Equal(t, 8, res.WPM)
	assert.Equal(t, []rune{'d'}, res.Weak)
	assert.Len(t, res.Trend, 3)

	last, has := h.ctrl.LastResults()
	assert.True(t, has)
	assert.Equal(t, res.WPM, last.WPM)

	out := h.ctrl.OnKey(session.KeyRune('d'))
	assert.Equal(t, session.OutcomeIgnored, out.Kind)
}

func TestEndToMenuCancelsTimers(t *testing.T) {
	h := newHarness(t, "sad ", WithMode(model.ModeOneMinute))
	tok, err := h.ctrl.Begin()
	require.NoError(t, err)
	h.ctrl.OnKey(session.KeyRune('s'))

	h.ctrl.EndToMenu()
	assert.Equal(t, 0, h.ctrl.PendingTimers())
	assert.Equal(t, session.Idle, h.ctrl.Session().State())
	assert.Equal(t, 1, h.ctrl.Session().Stats().CorrectKeystrokes)

	statsCalls := len(h.display.clocks)
	h.advance(2 * time.Minute)
	_, ok := h.ctrl.OnTick(tok)
	assert.False(t, ok)
	assert.Len(t, h.display.clocks, statsCalls)
	assert.Empty(t, h.display.results)

	h.ctrl.EndToMenu()
	assert.Equal(t, 0, h.ctrl.PendingTimers())
}

func TestSelectMode(t *testing.T) {
	h := newHarness(t, "sad ")
	assert.Equal(t, model.ModeFreeplay, h.ctrl.Mode())
	h.ctrl.SelectMode(model.ModeFiveMinutes)
	assert.Equal(t, model.ModeFiveMinutes, h.ctrl.Mode())
	_, err := h.ctrl.Begin()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, h.ctrl.Session().Stats().TimeLimit)
}
