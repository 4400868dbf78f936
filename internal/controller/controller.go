// Package controller drives a typing session: it owns the session
// lifecycle and the tick timers, and reports to a Display.
package controller

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/session"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// TickInterval is the period between ticks.
const TickInterval = time.Second

const defaultWeakTop = 5

// ErrNoDisplay is returned by Begin when the controller has no display.
var ErrNoDisplay = errors.New("controller has no display")

// Display receives everything the user sees.
type Display interface {
	// Render redraws the target text with per-position marks.
	Render(text []rune, cursor int, marks []session.Mark)
	// RenderStats refreshes the clock, WPM and accuracy readouts.
	RenderStats(clock string, wpm int, accuracy float64)
	// RenderResults is called once when a timed session expires.
	RenderResults(r stats.Results)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the wall clock used for ticks and stats.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithWeakTop sets how many weak keys the results list.
func WithWeakTop(n int) Option {
	return func(c *Controller) {
		c.weakTop = n
	}
}

// WithKeys sets the initial key set. Blank keys are ignored.
func WithKeys(keys string) Option {
	return func(c *Controller) {
		if k, err := model.ValidateKeys(keys); err == nil {
			c.keys = k
		}
	}
}

// WithMode sets the initial mode.
func WithMode(mode model.Mode) Option {
	return func(c *Controller) {
		c.mode = mode
	}
}

// Controller wires a Session to a Display and a set of tick timers.
type Controller struct {
	sess    *session.Session
	display Display
	logger  *slog.Logger
	clock   func() time.Time
	weakTop int

	keys   string
	mode   model.Mode
	timers timerSet

	sessionID string
	trend     []float64
	last      stats.Results
	hasLast   bool
}

// New returns a controller in the menu state with the default keys and
// freeplay mode.
func New(sess *session.Session, display Display, opts ...Option) *Controller {
	c := &Controller{
		sess:    sess,
		display: display,
		logger:  slog.Default(),
		clock:   time.Now,
		weakTop: defaultWeakTop,
		keys:    model.DefaultKeys,
		mode:    model.ModeFreeplay,
		timers:  newTimerSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDisplay replaces the display.
func (c *Controller) SetDisplay(d Display) {
	c.display = d
}

// Configure sets the key set used by the next session. Blank input is
// rejected and nothing changes.
func (c *Controller) Configure(keys string) error {
	k, err := model.ValidateKeys(keys)
	if err != nil {
		return err
	}
	c.keys = k
	c.logger.Debug("key set configured", slog.String("keys", k))
	return nil
}

// ResetKeys restores the default key set.
func (c *Controller) ResetKeys() {
	c.keys = model.DefaultKeys
	c.logger.Debug("key set reset", slog.String("keys", c.keys))
}

// Keys returns the configured key set.
func (c *Controller) Keys() string { return c.keys }

// SelectMode sets the mode used by the next session.
func (c *Controller) SelectMode(mode model.Mode) {
	c.mode = mode
}

// Mode returns the selected mode.
func (c *Controller) Mode() model.Mode { return c.mode }

// SessionID returns the id of the current or last session.
func (c *Controller) SessionID() string { return c.sessionID }

// Session exposes the underlying session for read-only queries.
func (c *Controller) Session() *session.Session { return c.sess }

// Begin cancels any outstanding timers, starts a new session, renders it,
// and returns the first tick token.
func (c *Controller) Begin() (TimerToken, error) {
	if c.display == nil {
		return 0, ErrNoDisplay
	}
	c.timers.cancelAll()
	if err := c.sess.Start(c.keys, c.mode.TimeLimit()); err != nil {
		return 0, err
	}
	c.sessionID = uuid.NewString()
	c.trend = c.trend[:0]
	c.logger.Info("session started",
		slog.String("session_id", c.sessionID),
		slog.String("mode", c.mode.String()),
		slog.String("keys", c.keys),
	)
	c.render()
	c.renderStats()
	return c.timers.issue(), nil
}

// OnTick handles a fired timer. Canceled or stale tokens are dropped and
// report false. While the session keeps running a new token is returned.
func (c *Controller) OnTick(tok TimerToken) (TimerToken, bool) {
	if !c.timers.consume(tok) {
		c.logger.Debug("stale tick dropped", slog.Uint64("token", uint64(tok)))
		return 0, false
	}
	if c.sess.State() != session.Running {
		return 0, false
	}
	now := c.clock()
	res := c.sess.Tick(now)
	st := c.sess.Stats()
	c.trend = append(c.trend, float64(stats.WordsPerMinute(st, now)))
	if res.Expired {
		c.timers.cancelAll()
		c.finish(st, now)
		return 0, false
	}
	c.renderStats()
	return c.timers.issue(), true
}

func (c *Controller) finish(st model.SessionStats, now time.Time) {
	c.last = stats.Results{
		SessionID: c.sessionID,
		Mode:      c.mode.String(),
		WPM:       stats.WordsPerMinute(st, now),
		Accuracy:  stats.Accuracy(st),
		Elapsed:   st.Elapsed(now),
		Correct:   st.CorrectKeystrokes,
		Total:     st.TotalKeystrokes,
		Trend:     append([]float64(nil), c.trend...),
		Weak:      stats.SelectWeakChars(st.Chars, c.weakTop),
		Chars:     st.Chars,
	}
	c.hasLast = true
	c.logger.Info("session finished",
		slog.String("session_id", c.sessionID),
		slog.Int("wpm", c.last.WPM),
		slog.Float64("accuracy", c.last.Accuracy),
		slog.Int("chars_typed", st.CharsTyped),
		slog.Duration("elapsed", c.last.Elapsed),
	)
	c.display.RenderResults(c.last)
}

// OnKey applies a key to the running session and refreshes the display.
func (c *Controller) OnKey(k session.RawKey) session.Outcome {
	out := c.sess.ProcessKey(k)
	if out.Kind == session.OutcomeIgnored && !out.Regenerated {
		return out
	}
	if out.Regenerated {
		c.logger.Debug("text regenerated", slog.String("session_id", c.sessionID))
	}
	c.render()
	if out.Kind != session.OutcomeIgnored {
		c.renderStats()
	}
	return out
}

// EndToMenu cancels all timers and stops the session.
func (c *Controller) EndToMenu() {
	canceled := c.timers.cancelAll()
	if c.sess.State() == session.Running {
		c.logger.Info("session abandoned",
			slog.String("session_id", c.sessionID),
			slog.Int("timers_canceled", canceled),
		)
	}
	c.sess.Stop()
}

// PendingTimers returns the number of live tick tokens.
func (c *Controller) PendingTimers() int {
	return c.timers.pending()
}

// LastResults returns the results of the last expired session.
func (c *Controller) LastResults() (stats.Results, bool) {
	return c.last, c.hasLast
}

func (c *Controller) render() {
	c.display.Render(c.sess.Text(), c.sess.Cursor(), c.sess.Marks())
}

func (c *Controller) renderStats() {
	now := c.clock()
	st := c.sess.Stats()
	c.display.RenderStats(stats.ClockDisplay(st, now), stats.WordsPerMinute(st, now), stats.Accuracy(st))
}
