package captcha

import "strings"

// confusable maps each visually confusable character onto a canonical form,
// so "0" and "o" compare equal, as do "1" and "l".
var confusable = map[rune]rune{
	'0': 'o',
	'1': 'l',
}

// MatchPhrase reports whether input matches phrase. The comparison is
// case-insensitive, position-wise over the full phrase length, and treats the
// confusable pairs 0/o and 1/l as equal. Which of the internal reasons made a
// comparison fail is deliberately not reported.
func MatchPhrase(phrase, input string) bool {
	p := []rune(strings.ToLower(phrase))
	in := []rune(strings.ToLower(strings.TrimSpace(input)))
	if len(p) == 0 || len(p) != len(in) {
		return false
	}
	for i := range p {
		if canonical(p[i]) != canonical(in[i]) {
			return false
		}
	}
	return true
}

func canonical(r rune) rune {
	if c, ok := confusable[r]; ok {
		return c
	}
	return r
}
