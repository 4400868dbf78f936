package lexicon

import (
	"log/slog"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 32

// Lexicon holds a dictionary for the process lifetime and memoises filtered
// word sets per key set.
type Lexicon struct {
	words    []string
	minLen   int
	fallback bool
	cache    *lru.Cache[string, []string]
	logger   *slog.Logger
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithMinWordLen overrides the minimum word length kept by Filter.
func WithMinWordLen(n int) Option {
	return func(l *Lexicon) {
		if n > 0 {
			l.minLen = n
		}
	}
}

// WithLogger sets the logger used to report dictionary fallback.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexicon) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New builds a Lexicon over an in-memory word list. An empty list selects
// the fallback words.
func New(words []string, opts ...Option) *Lexicon {
	l := &Lexicon{
		words:  words,
		minLen: DefaultMinWordLen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.words) == 0 {
		l.words = Fallback
		l.fallback = true
	}
	cache, err := lru.New[string, []string](defaultCacheSize)
	if err == nil {
		l.cache = cache
	}
	return l
}

// Open loads the dictionary at path. Read failures are never returned: the
// built-in fallback list is used instead so text generation always works.
func Open(path string, opts ...Option) *Lexicon {
	words, err := LoadDictionary(path)
	l := New(words, opts...)
	if err != nil {
		l.logger.Debug("dictionary unavailable, using fallback words",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
	return l
}

// Filter returns the words typeable with keys. Callers must not modify the
// returned slice.
func (l *Lexicon) Filter(keys string) []string {
	if l.cache == nil {
		return FilterWords(keys, l.words, l.minLen)
	}
	cacheKey := normalizeKeys(keys) + "\x00" + strconv.Itoa(l.minLen)
	if words, ok := l.cache.Get(cacheKey); ok {
		return words
	}
	words := FilterWords(keys, l.words, l.minLen)
	l.cache.Add(cacheKey, words)
	return words
}

// UsingFallback reports whether the built-in word list is in use.
func (l *Lexicon) UsingFallback() bool {
	return l.fallback
}

// Size returns the number of dictionary words.
func (l *Lexicon) Size() int {
	return len(l.words)
}
