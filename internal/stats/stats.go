// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// charsPerWord is the standard word length used by WPM.
const charsPerWord = 5.0

// Results is the summary shown when a timed session ends.
type Results struct {
	SessionID string
	Mode      string
	WPM       int
	Accuracy  float64
	Elapsed   time.Duration
	Correct   int
	Total     int
	// Trend holds one WPM sample per tick.
	Trend []float64
	Weak  []rune
	Chars map[rune]model.CharTally
}

// WordsPerMinute returns floor((correct/5) / minutes). It uses EndedAt in
// place of now once the session has ended.
func WordsPerMinute(st model.SessionStats, now time.Time) int {
	minutes := st.Elapsed(now).Minutes()
	if minutes <= 0 {
		return 0
	}
	return int(math.Floor((float64(st.CorrectKeystrokes) / charsPerWord) / minutes))
}

// Accuracy returns the share of correct keystrokes in percent, 100 when
// nothing has been typed.
func Accuracy(st model.SessionStats) float64 {
	if st.TotalKeystrokes <= 0 {
		return 100
	}
	return 100 * float64(st.CorrectKeystrokes) / float64(st.TotalKeystrokes)
}

// ClockDisplay formats the session clock as "Time: MM:SS". Timed sessions
// count down, freeplay counts up.
func ClockDisplay(st model.SessionStats, now time.Time) string {
	d := st.Elapsed(now)
	if st.TimeLimit > 0 {
		d = st.Remaining(now)
	}
	return "Time: " + FormatClock(d)
}

// FormatClock formats d as MM:SS, truncating to whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// CharLabel returns a printable label for a practice character.
func CharLabel(r rune) string {
	if r == ' ' {
		return "<space>"
	}
	return string(r)
}

// RenderResults prints the session summary and a per-character table.
func RenderResults(w io.Writer, r Results) error {
	lines := []string{
		"Session results",
		fmt.Sprintf("Mode: %s", r.Mode),
		fmt.Sprintf("WPM: %d", r.WPM),
		fmt.Sprintf("Accuracy: %.1f%%", r.Accuracy),
		fmt.Sprintf("Time: %s", FormatClock(r.Elapsed)),
		fmt.Sprintf("Keystrokes: %d correct / %d total", r.Correct, r.Total),
	}
	if len(r.Trend) > 1 {
		lines = append(lines, "Trend: "+Sparkline(MovingAverage(r.Trend, 3)))
	}
	if len(r.Weak) > 0 {
		labels := make([]string, 0, len(r.Weak))
		for _, ch := range r.Weak {
			labels = append(labels, CharLabel(ch))
		}
		lines = append(lines, "Weakest keys: "+strings.Join(labels, " "))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(r.Chars) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	for _, line := range layoutColumns(charColumns, charRows(r.Chars)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
