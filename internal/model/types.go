// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultKeys is the key set used until the user picks custom keys.
const DefaultKeys = "asdfghjkl;qwertyuiop"

var (
	// ErrEmptyKeys is returned for a blank key set.
	ErrEmptyKeys = errors.New("key set must not be empty")
	// ErrInvalidTime is returned for a custom time that is not a positive number of seconds.
	ErrInvalidTime = errors.New("time must be a positive number of seconds")
	// ErrUnknownMode is returned for an unrecognised mode name.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownTheme is returned for a theme other than light or dark.
	ErrUnknownTheme = errors.New("unknown theme")
)

// Config defines practice settings.
type Config struct {
	Keys          string
	Mode          Mode
	Theme         string
	Dictionary    string
	Synthetic     bool
	MinWordLen    int
	MaxLength     int
	SyntheticSize int
}

// ModeKind enumerates session length policies.
type ModeKind int

const (
	// Freeplay sessions run until the user returns to the menu.
	Freeplay ModeKind = iota
	// Fixed sessions use one of the preset limits.
	Fixed
	// Custom sessions use a user-provided limit.
	Custom
)

// Mode selects how long a session runs.
type Mode struct {
	Kind    ModeKind
	Seconds int
}

// Preset modes.
var (
	ModeFreeplay    = Mode{Kind: Freeplay}
	ModeOneMinute   = Mode{Kind: Fixed, Seconds: 60}
	ModeFiveMinutes = Mode{Kind: Fixed, Seconds: 300}
)

// MaxCustomSeconds caps a custom session at one day.
const MaxCustomSeconds = 24 * 60 * 60

// CustomMode returns a custom mode limited to the given number of seconds.
func CustomMode(seconds int) (Mode, error) {
	if seconds <= 0 {
		return Mode{}, ErrInvalidTime
	}
	if seconds > MaxCustomSeconds {
		return Mode{}, fmt.Errorf("%w (at most %d)", ErrInvalidTime, MaxCustomSeconds)
	}
	return Mode{Kind: Custom, Seconds: seconds}, nil
}

// ParseMode resolves a mode name. custom is only consulted for "custom".
func ParseMode(name string, custom int) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "freeplay":
		return ModeFreeplay, nil
	case "1min":
		return ModeOneMinute, nil
	case "5min":
		return ModeFiveMinutes, nil
	case "custom":
		return CustomMode(custom)
	default:
		return Mode{}, fmt.Errorf("%w %q (want freeplay, 1min, 5min, custom)", ErrUnknownMode, name)
	}
}

// TimeLimit returns the session limit; zero means unlimited.
func (m Mode) TimeLimit() time.Duration {
	if m.Kind == Freeplay || m.Seconds <= 0 {
		return 0
	}
	return time.Duration(m.Seconds) * time.Second
}

func (m Mode) String() string {
	switch {
	case m.Kind == Freeplay:
		return "freeplay"
	case m == ModeOneMinute:
		return "1min"
	case m == ModeFiveMinutes:
		return "5min"
	default:
		return fmt.Sprintf("custom(%ds)", m.Seconds)
	}
}

// ValidateKeys trims a key set and rejects blank input.
func ValidateKeys(keys string) (string, error) {
	keys = strings.TrimSpace(keys)
	if keys == "" {
		return "", ErrEmptyKeys
	}
	return keys, nil
}

// SessionStats holds the running counters of a typing session.
type SessionStats struct {
	TotalKeystrokes   int
	CorrectKeystrokes int
	// CharsTyped counts every scored attempt, wrong ones included.
	CharsTyped int
	StartedAt  time.Time
	EndedAt    time.Time
	TimeLimit  time.Duration
	Chars      map[rune]CharTally
}

// Elapsed returns the time spent in the session as of now, or up to EndedAt
// once the session has ended.
func (s SessionStats) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	end := now
	if !s.EndedAt.IsZero() {
		end = s.EndedAt
	}
	d := end.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns the time left in a timed session, never negative.
func (s SessionStats) Remaining(now time.Time) time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	left := s.TimeLimit - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// CharTally stores per-character results for a session.
type CharTally struct {
	Correct   int
	Incorrect int
}
