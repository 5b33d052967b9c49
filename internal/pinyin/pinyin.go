// Package pinyin converts tone-marked pinyin to the numeric form learners
// type (ni3hao3) and decides whether an answer matches.
package pinyin

import "strings"

// toneTable maps each tone-marked character to its base letter and tone.
// The ü family resolves straight to v, the ASCII convention for typing it.
var toneTable = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'v', 1}, 'ǘ': {'v', 2}, 'ǚ': {'v', 3}, 'ǜ': {'v', 4},
	'ń': {'n', 2}, 'ň': {'n', 3}, 'ǹ': {'n', 4},
}

// continuesFinal reports whether r can extend the final of the syllable the
// pending tone belongs to (trailing vowels, n, ng, erhua r).
func continuesFinal(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'ü', 'n', 'g', 'r',
		'A', 'E', 'I', 'O', 'U', 'Ü', 'N', 'G', 'R':
		return true
	}
	return false
}

// ConvertToneMarks rewrites tone diacritics as digits placed at the end of
// the syllable (hǎo becomes hao3, not ha3o) and folds ü to v. Used both for
// display of the canonical answer and inside Normalize.
func ConvertToneMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := 0
	flush := func() {
		if pending != 0 {
			b.WriteByte('0' + byte(pending))
			pending = 0
		}
	}
	for _, r := range s {
		if m, ok := toneTable[r]; ok {
			flush() // a second mark means a new syllable started
			b.WriteRune(m.base)
			pending = m.tone
			continue
		}
		if pending != 0 && !continuesFinal(r) {
			flush()
		}
		if r == 'ü' || r == 'Ü' {
			r = 'v'
		}
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

// Normalize produces the comparable form of a pinyin string: tone marks to
// digits, ü to v, lower-cased, spaces and commas stripped. A syllable with
// no tone mark stays bare, so a neutral tone must be typed without a digit.
func Normalize(s string) string {
	s = ConvertToneMarks(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	return s
}

// CheckAnswer reports whether the typed answer matches the canonical pinyin.
// Exact match after normalization; no partial credit.
func CheckAnswer(userInput, canonical string) bool {
	return Normalize(userInput) == Normalize(canonical)
}
