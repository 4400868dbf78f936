package session

import "unicode"

// Backspace is the control rune the backspace key translates to.
const Backspace = '\b'

// RawKey is a key event as reported by the presentation layer: a symbolic
// name for special keys and the typed character, if any.
type RawKey struct {
	Sym  string
	Char rune
}

// Named keys.
var (
	KeyBackspace = RawKey{Sym: "BackSpace"}
	KeySpace     = RawKey{Sym: "space", Char: ' '}
	KeyPeriod    = RawKey{Sym: "period", Char: '.'}
	KeyComma     = RawKey{Sym: "comma", Char: ','}
)

// KeyRune returns the raw key for a typed character. Characters with a
// symbolic name come back as the named key.
func KeyRune(r rune) RawKey {
	switch r {
	case ' ':
		return KeySpace
	case '.':
		return KeyPeriod
	case ',':
		return KeyComma
	}
	return RawKey{Char: r}
}

var translations = map[string]rune{
	"space":     ' ',
	"period":    '.',
	"comma":     ',',
	"BackSpace": Backspace,
}

// Translate maps a raw key to the single logical character it stands for.
// Keys with no character, and control keys other than backspace, report false.
func Translate(k RawKey) (rune, bool) {
	if r, ok := translations[k.Sym]; ok {
		return r, true
	}
	switch {
	case k.Char == Backspace:
		return Backspace, true
	case k.Char == 0, unicode.IsControl(k.Char):
		return 0, false
	}
	return k.Char, true
}
