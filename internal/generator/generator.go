// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinWordSize and MaxWordSize bound synthetic word lengths.
	MinWordSize = 2
	MaxWordSize = 8
	// MinTextLen is the floor for synthetic text, counted without spaces.
	MinTextLen = 170
	// DefaultMaxLength is the ceiling for lexical text.
	DefaultMaxLength = 180
)

// NoWordsNotice replaces lexical text when no word can be typed with the keys.
const NoWordsNotice = "No valid English words found with these letters"

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Sentence joins uniformly chosen words while the next word and its separator
// still fit in maxLength. It stops at the first word that does not fit and
// always ends with a space.
func (g *Generator) Sentence(words []string, maxLength int) string {
	if len(words) == 0 {
		return NoWordsNotice
	}
	var b strings.Builder
	length := 0
	for length < maxLength {
		word := words[g.rnd.Intn(len(words))]
		n := utf8.RuneCountInString(word)
		if length+n+1 > maxLength {
			break
		}
		if length > 0 {
			b.WriteByte(' ')
			length++
		}
		b.WriteString(word)
		length += n
	}
	b.WriteByte(' ')
	return b.String()
}

// Synthetic builds random words from keys until the letters alone reach
// minTotal. Unlike Sentence, the bound is a floor: the last word may overshoot.
func (g *Generator) Synthetic(keys string, minTotal int) string {
	runes := []rune(keys)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	total := 0
	for total < minTotal {
		word := g.Word(runes)
		b.WriteString(word)
		b.WriteByte(' ')
		total += utf8.RuneCountInString(word)
	}
	return b.String()
}

// Word returns a word of MinWordSize..MaxWordSize runes drawn from keys.
func (g *Generator) Word(keys []rune) string {
	n := MinWordSize + g.rnd.Intn(MaxWordSize-MinWordSize+1)
	out := make([]rune, n)
	for i := range out {
		out[i] = keys[g.rnd.Intn(len(keys))]
	}
	return string(out)
}
