package stats

import (
	"sort"

	"github.com/verte-zerg/keydrill/internal/model"
)

// SelectWeakChars returns up to top characters that were missed at least
// once, lowest accuracy first. top <= 0 returns all of them.
func SelectWeakChars(tallies map[rune]model.CharTally, top int) []rune {
	missed := make(map[rune]model.CharTally, len(tallies))
	for ch, t := range tallies {
		if t.Incorrect > 0 {
			missed[ch] = t
		}
	}
	ranked := rankChars(missed)
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}
	return ranked
}

// rankChars orders characters by ascending accuracy, then by rune.
func rankChars(tallies map[rune]model.CharTally) []rune {
	out := make([]rune, 0, len(tallies))
	for ch, t := range tallies {
		if t.Correct+t.Incorrect == 0 {
			continue
		}
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool {
		ai := tallyAccuracy(tallies[out[i]])
		aj := tallyAccuracy(tallies[out[j]])
		if ai == aj {
			return out[i] < out[j]
		}
		return ai < aj
	})
	return out
}

func tallyAccuracy(t model.CharTally) float64 {
	total := t.Correct + t.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(t.Correct) / float64(total)
}
