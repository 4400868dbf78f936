// Package lexicon loads dictionaries and filters them by key set.
package lexicon

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Fallback is used whenever the dictionary file cannot be read.
var Fallback = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her",
	"she", "or", "an", "will", "my", "one", "all", "would", "there",
}

// LoadDictionary reads one word per line from the provided file path.
// Words are lower-cased and anything that is not purely alphabetic is skipped.
func LoadDictionary(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !isAlpha(line) {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary %s has no usable words", path)
	}
	return words, nil
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
