package generator

// WordSource yields the dictionary words typeable with a key set.
type WordSource interface {
	Filter(keys string) []string
}

// Options selects the text mode and its length bound.
type Options struct {
	Synthetic bool
	// MaxLength caps lexical text; zero selects DefaultMaxLength.
	MaxLength int
	// MinLength is the synthetic floor; zero selects MinTextLen.
	MinLength int
}

// Sentences produces the next target text for a key set.
type Sentences struct {
	gen   *Generator
	words WordSource
	opts  Options
}

// NewSentences wires a generator to a word source. words may be nil when
// opts.Synthetic is set.
func NewSentences(gen *Generator, words WordSource, opts Options) *Sentences {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	if opts.MinLength <= 0 {
		opts.MinLength = MinTextLen
	}
	return &Sentences{gen: gen, words: words, opts: opts}
}

// Next returns a fresh target text.
func (s *Sentences) Next(keys string) string {
	if s.opts.Synthetic || s.words == nil {
		return s.gen.Synthetic(keys, s.opts.MinLength)
	}
	return s.gen.Sentence(s.words.Filter(keys), s.opts.MaxLength)
}
