package spd

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var diacritics = map[rune]rune{
	'á': 'a', 'ä': 'a', 'â': 'a', 'ă': 'a', 'ą': 'a',
	'č': 'c', 'ć': 'c', 'ç': 'c',
	'ď': 'd',
	'é': 'e', 'ě': 'e', 'ë': 'e', 'ę': 'e',
	'í': 'i', 'î': 'i',
	'ĺ': 'l', 'ľ': 'l', 'ł': 'l',
	'ň': 'n', 'ń': 'n',
	'ó': 'o', 'ô': 'o', 'ö': 'o', 'ő': 'o',
	'ŕ': 'r', 'ř': 'r',
	'š': 's', 'ś': 's',
	'ť': 't',
	'ú': 'u', 'ů': 'u', 'ü': 'u', 'ű': 'u',
	'ý': 'y',
	'ž': 'z', 'ź': 'z', 'ż': 'z',

	'Á': 'A', 'Ä': 'A', 'Â': 'A', 'Ă': 'A', 'Ą': 'A',
	'Č': 'C', 'Ć': 'C', 'Ç': 'C',
	'Ď': 'D',
	'É': 'E', 'Ě': 'E', 'Ë': 'E', 'Ę': 'E',
	'Í': 'I', 'Î': 'I',
	'Ĺ': 'L', 'Ľ': 'L', 'Ł': 'L',
	'Ň': 'N', 'Ń': 'N',
	'Ó': 'O', 'Ô': 'O', 'Ö': 'O', 'Ő': 'O',
	'Ŕ': 'R', 'Ř': 'R',
	'Š': 'S', 'Ś': 'S',
	'Ť': 'T',
	'Ú': 'U', 'Ů': 'U', 'Ü': 'U', 'Ű': 'U',
	'Ý': 'Y',
	'Ž': 'Z', 'Ź': 'Z', 'Ż': 'Z',
}

var stripper = runes.Map(func(r rune) rune {
	if plain, ok := diacritics[r]; ok {
		return plain
	}
	return r
})

// StripDiacritics replaces Central European accented letters with their
// plain ASCII counterparts in a single pass. Anything not in the table is
// left alone.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

func truncateRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
