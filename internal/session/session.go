// Package session implements the typing-session state machine.
package session

import (
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
)

// State is the lifecycle state of a session.
type State int

const (
	// Idle sessions ignore keys and ticks.
	Idle State = iota
	// Running sessions score keys; sentence changes stay in Running.
	Running
	// Finished is entered once when a timed session expires.
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// Mark is the classification recorded against a text position.
type Mark uint8

const (
	// MarkNone means no keystroke is recorded at the position.
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// OutcomeKind describes what a key did.
type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeCorrect
	OutcomeIncorrect
	OutcomeReverted
)

// Outcome reports the effect of a key on the session.
type Outcome struct {
	Kind OutcomeKind
	// Pos is the text position that was scored or reverted.
	Pos int
	// Regenerated is set when the key caused a new target text.
	Regenerated bool
}

// TickResult is the time view of a session after a tick.
type TickResult struct {
	State     State
	Elapsed   time.Duration
	Remaining time.Duration
	// Expired is true only on the tick that moved the session to Finished.
	Expired bool
}

// TextSource produces target texts for a key set.
type TextSource interface {
	Next(keys string) string
}

// Session tracks the cursor, per-position marks, and counters of one
// practice session.
type Session struct {
	source TextSource
	clock  func() time.Time

	state  State
	keys   string
	text   []rune
	cursor int
	marks  []Mark
	stats  model.SessionStats
}

// New returns an idle session. A nil clock uses time.Now.
func New(source TextSource, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{source: source, clock: clock}
}

// Start resets the counters, loads a fresh text, and enters Running.
func (s *Session) Start(keys string, limit time.Duration) error {
	keys, err := model.ValidateKeys(keys)
	if err != nil {
		return err
	}
	if limit < 0 {
		limit = 0
	}
	s.keys = keys
	s.stats = model.SessionStats{
		StartedAt: s.clock(),
		TimeLimit: limit,
		Chars:     map[rune]model.CharTally{},
	}
	s.state = Running
	s.regenerate()
	return nil
}

// ProcessKey applies one key to the session.
func (s *Session) ProcessKey(k RawKey) Outcome {
	if s.state != Running {
		return Outcome{Kind: OutcomeIgnored}
	}
	if len(s.text) == 0 {
		s.regenerate()
		return Outcome{Kind: OutcomeIgnored, Regenerated: true}
	}
	ch, ok := Translate(k)
	if !ok {
		return Outcome{Kind: OutcomeIgnored}
	}
	if ch == Backspace {
		return s.revert()
	}
	return s.advance(ch)
}

func (s *Session) advance(ch rune) Outcome {
	pos := s.cursor
	expected := s.text[pos]
	tally := s.stats.Chars[expected]

	mark := MarkIncorrect
	out := Outcome{Kind: OutcomeIncorrect, Pos: pos}
	if ch == expected {
		mark = MarkCorrect
		out.Kind = OutcomeCorrect
		s.stats.CorrectKeystrokes++
		tally.Correct++
	} else {
		tally.Incorrect++
	}
	s.stats.TotalKeystrokes++
	s.stats.CharsTyped++
	s.stats.Chars[expected] = tally
	s.marks[pos] = mark
	s.cursor++

	if s.cursor == len(s.text) {
		s.regenerate()
		out.Regenerated = true
	}
	return out
}

// revert undoes the keystroke before the cursor. A position without a
// record moves the cursor back but leaves the counters alone.
func (s *Session) revert() Outcome {
	if s.cursor == 0 {
		return Outcome{Kind: OutcomeIgnored}
	}
	pos := s.cursor - 1
	expected := s.text[pos]
	tally := s.stats.Chars[expected]
	switch s.marks[pos] {
	case MarkCorrect:
		s.stats.TotalKeystrokes--
		s.stats.CorrectKeystrokes--
		tally.Correct--
		s.stats.Chars[expected] = tally
	case MarkIncorrect:
		s.stats.TotalKeystrokes--
		tally.Incorrect--
		s.stats.Chars[expected] = tally
	}
	s.marks[pos] = MarkNone
	s.cursor = pos
	return Outcome{Kind: OutcomeReverted, Pos: pos}
}

// regenerate swaps in a new text. Counters carry over; marks do not.
func (s *Session) regenerate() {
	s.text = []rune(s.source.Next(s.keys))
	s.cursor = 0
	s.marks = make([]Mark, len(s.text))
}

// Tick advances the session clock. A timed session whose limit has passed
// moves to Finished; later ticks change nothing.
func (s *Session) Tick(now time.Time) TickResult {
	res := TickResult{
		State:     s.state,
		Elapsed:   s.stats.Elapsed(now),
		Remaining: s.stats.Remaining(now),
	}
	if s.state != Running {
		return res
	}
	if s.stats.TimeLimit > 0 && res.Elapsed >= s.stats.TimeLimit {
		s.state = Finished
		s.stats.EndedAt = now
		res.State = Finished
		res.Elapsed = s.stats.Elapsed(now)
		res.Remaining = 0
		res.Expired = true
	}
	return res
}

// Stop returns to Idle from any state and drops the current text. The
// counters stay readable until the next Start.
func (s *Session) Stop() {
	if s.state == Running {
		s.stats.EndedAt = s.clock()
	}
	s.state = Idle
	s.text = nil
	s.cursor = 0
	s.marks = nil
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Keys returns the key set the session was started with.
func (s *Session) Keys() string { return s.keys }

// Text returns the current target text.
func (s *Session) Text() []rune {
	return append([]rune(nil), s.text...)
}

// Cursor returns the index of the next expected character.
func (s *Session) Cursor() int { return s.cursor }

// Marks returns a copy of the per-position marks of the current text.
func (s *Session) Marks() []Mark {
	return append([]Mark(nil), s.marks...)
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() model.SessionStats {
	out := s.stats
	if s.stats.Chars != nil {
		out.Chars = make(map[rune]model.CharTally, len(s.stats.Chars))
		for r, t := range s.stats.Chars {
			out.Chars[r] = t
		}
	}
	return out
}
