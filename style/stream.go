package style

import (
	"strconv"

	"stylecheck/utils/debug"
)

// Char is a single code point together with its resolved style.
type Char struct {
	Rune  rune
	Style Attributes
}

// Quoted returns character quoted the way it is shown in reports.
func (c Char) Quoted() string {
	return strconv.QuoteRune(c.Rune)
}

// Stream is ordered sequence of styled characters - canonical output of every
// document producer. Flattened text is derived from the very same slice,
// so text and styles can not get out of step.
type Stream struct {
	chars []Char
}

// NewStream creates stream from characters, slice is owned by the stream
// after the call.
func NewStream(chars ...Char) *Stream {
	return &Stream{chars: chars}
}

// FromString creates stream where every character has the same style.
func FromString(s string, a Attributes) *Stream {
	st := &Stream{}
	st.AppendString(s, a)
	return st
}

// Len returns number of characters in the stream.
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.chars)
}

// At returns character at position i, false is returned when i is outside of
// the stream.
func (s *Stream) At(i int) (Char, bool) {
	if s == nil || i < 0 || i >= len(s.chars) {
		return Char{}, false
	}
	return s.chars[i], true
}

// Chars returns copy of stream characters.
func (s *Stream) Chars() []Char {
	if s == nil {
		return nil
	}
	return append([]Char(nil), s.chars...)
}

// Runes returns flattened text as code points, index i corresponds to At(i).
func (s *Stream) Runes() []rune {
	if s == nil {
		return nil
	}
	rs := make([]rune, len(s.chars))
	for i, c := range s.chars {
		rs[i] = c.Rune
	}
	return rs
}

// Text returns flattened text.
func (s *Stream) Text() string {
	return string(s.Runes())
}

// Slice returns flattened text of characters [from, to), bounds are clamped.
func (s *Stream) Slice(from, to int) string {
	from, to = max(from, 0), min(to, s.Len())
	if from >= to {
		return ""
	}
	rs := make([]rune, 0, to-from)
	for _, c := range s.chars[from:to] {
		rs = append(rs, c.Rune)
	}
	return string(rs)
}

// Append adds single character.
func (s *Stream) Append(r rune, a Attributes) {
	s.chars = append(s.chars, Char{Rune: r, Style: a})
}

// AppendString adds every code point of str with the same style.
func (s *Stream) AppendString(str string, a Attributes) {
	for _, r := range str {
		s.chars = append(s.chars, Char{Rune: r, Style: a})
	}
}

// Concat appends all characters of other streams in order.
func (s *Stream) Concat(others ...*Stream) *Stream {
	for _, o := range others {
		if o != nil {
			s.chars = append(s.chars, o.chars...)
		}
	}
	return s
}

// Equal reports whether two streams have identical characters and styles.
func (s *Stream) Equal(other *Stream) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.Len() {
		if s.chars[i].Rune != other.chars[i].Rune || !s.chars[i].Style.Equal(other.chars[i].Style) {
			return false
		}
	}
	return true
}

// Run is a maximal sequence of adjacent characters with equal style.
type Run struct {
	Text     string
	Style    Attributes
	Position int
	Length   int
}

// Runs groups stream into style runs.
func (s *Stream) Runs() []Run {
	var (
		runs  []Run
		start int
	)
	for i := 1; i <= s.Len(); i++ {
		if i < s.Len() && s.chars[i].Style.Equal(s.chars[start].Style) {
			continue
		}
		runs = append(runs, Run{
			Text:     s.Slice(start, i),
			Style:    s.chars[start].Style,
			Position: start,
			Length:   i - start,
		})
		start = i
	}
	return runs
}

// String returns readable dump of style runs. It exists solely for manual
// inspection during debugging.
func (s *Stream) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Stream: %d characters", s.Len())
	for _, r := range s.Runs() {
		tw.Line(1, "Run[%d:%d] %s", r.Position, r.Position+r.Length, r.Style.Describe())
		tw.TextBlock(2, "text", r.Text)
	}
	return tw.String()
}
