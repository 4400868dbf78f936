package generator

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Generator {
	return NewWithSource(rand.NewSource(1))
}

func TestSentenceRespectsCeiling(t *testing.T) {
	gen := seeded()
	words := []string{"sad", "fads", "add", "dad"}
	for i := 0; i < 50; i++ {
		text := gen.Sentence(words, 40)
		require.True(t, strings.HasSuffix(text, " "), "text must end with a space: %q", text)
		body := strings.TrimSuffix(text, " ")
		assert.LessOrEqual(t, utf8.RuneCountInString(body), 40)
		for _, w := range strings.Split(body, " ") {
			assert.Contains(t, words, w)
		}
	}
}

func TestSentenceEmptyWordsReturnsNotice(t *testing.T) {
	assert.Equal(t, NoWordsNotice, seeded().Sentence(nil, 180))
}

func TestSentenceTooShortBound(t *testing.T) {
	assert.Equal(t, " ", seeded().Sentence([]string{"longword"}, 4))
}

func TestSyntheticMeetsFloor(t *testing.T) {
	gen := seeded()
	keys := "asdf"
	text := gen.Synthetic(keys, MinTextLen)
	require.True(t, strings.HasSuffix(text, " "))

	letters := 0
	for _, w := range strings.Fields(text) {
		n := utf8.RuneCountInString(w)
		assert.GreaterOrEqual(t, n, MinWordSize)
		assert.LessOrEqual(t, n, MaxWordSize)
		letters += n
	}
	assert.GreaterOrEqual(t, letters, MinTextLen)
	assert.Less(t, letters, MinTextLen+MaxWordSize)

	for _, r := range text {
		if r != ' ' {
			assert.Contains(t, keys, string(r))
		}
	}
}

func TestSyntheticEmptyKeys(t *testing.T) {
	assert.Equal(t, "", seeded().Synthetic("", 10))
}

func TestSentencesPicksMode(t *testing.T) {
	words := staticWords{"sad", "dad"}

	lexical := NewSentences(seeded(), words, Options{MaxLength: 30})
	text := lexical.Next("asd")
	for _, w := range strings.Fields(text) {
		assert.Contains(t, []string(words), w)
	}

	synthetic := NewSentences(seeded(), words, Options{Synthetic: true, MinLength: 10})
	text = synthetic.Next("jk")
	assert.Empty(t, strings.Trim(text, "jk "))
}

type staticWords []string

func (s staticWords) Filter(string) []string { return s }
