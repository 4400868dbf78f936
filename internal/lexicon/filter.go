package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMinWordLen is the shortest word kept by the filter.
const DefaultMinWordLen = 3

// FilterWords returns the sorted, de-duplicated words that can be typed with
// keys alone. A key may be reused any number of times within a word.
func FilterWords(keys string, words []string, minLen int) []string {
	allowed := keySet(keys)
	if len(allowed) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0)
	for _, word := range words {
		word = strings.ToLower(word)
		if word == "" || utf8.RuneCountInString(word) < minLen {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		if !typeable(word, allowed) {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

func typeable(word string, allowed map[rune]struct{}) bool {
	for _, r := range word {
		if _, ok := allowed[r]; !ok {
			return false
		}
	}
	return true
}

func keySet(keys string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(keys))
	for _, r := range strings.ToLower(keys) {
		set[r] = struct{}{}
	}
	return set
}

// normalizeKeys returns the sorted unique runes of keys, lower-cased, so
// permutations of the same key set share a cache entry.
func normalizeKeys(keys string) string {
	set := keySet(keys)
	runes := make([]rune, 0, len(set))
	for r := range set {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}
