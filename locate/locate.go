// Package locate finds phrases in flattened document text.
package locate

import (
	"strings"
	"unicode"
)

// Match is an inclusive span of character offsets.
type Match struct {
	Start int
	End   int
	// Fallback is set when phrase words were not contiguous in text and
	// span was built from the first and the last word.
	Fallback bool
}

// Len returns number of characters covered by match.
func (m Match) Len() int {
	return m.End - m.Start + 1
}

// Find locates phrase in text ignoring case. Offsets are counted in
// characters (runes), not bytes.
//
// When phrase does not occur literally and consists of several words, span
// from the first occurrence of its first word to the end of the following
// occurrence of its last word is returned. Words in between are not checked.
func Find(text, phrase string) (Match, bool) {
	hay := lower(text)
	needle := lower(phrase)
	if len(needle) == 0 {
		return Match{}, false
	}

	if pos := index(hay, needle, 0); pos >= 0 {
		return Match{Start: pos, End: pos + len(needle) - 1}, true
	}

	words := strings.Fields(string(needle))
	if len(words) < 2 {
		return Match{}, false
	}
	first, last := []rune(words[0]), []rune(words[len(words)-1])

	start := index(hay, first, 0)
	if start < 0 {
		return Match{}, false
	}
	end := index(hay, last, start)
	if end < 0 {
		return Match{}, false
	}
	return Match{Start: start, End: end + len(last) - 1, Fallback: true}, true
}

// lower maps every rune separately so the result has the same number of
// characters as the input.
func lower(s string) []rune {
	res := []rune(s)
	for i, r := range res {
		res[i] = unicode.ToLower(r)
	}
	return res
}

// index returns offset of the first occurrence of needle in hay at or after
// from, or -1.
func index(hay, needle []rune, from int) int {
	n := len(needle)
	for i := from; i+n <= len(hay); i++ {
		if hay[i] != needle[0] {
			continue
		}
		j := 1
		for j < n && hay[i+j] == needle[j] {
			j++
		}
		if j == n {
			return i
		}
	}
	return -1
}
