// Package report describes formatting around located phrases.
package report

import (
	"fmt"
	"io"
	"strings"

	"stylecheck/locate"
	"stylecheck/style"
)

// DefaultWidth is number of characters shown on each side of a match.
const DefaultWidth = 15

const notFound = "Not found"

// Report holds characters adjacent to a match. Before and After are nil when
// match touches stream edges.
type Report struct {
	Match   locate.Match
	Before  *style.Char
	After   *style.Char
	Context string
}

// Build looks up neighbors of match in s and cuts context window of up to
// width characters on each side. Negative width means DefaultWidth.
func Build(s *style.Stream, m locate.Match, width int) Report {
	if width < 0 {
		width = DefaultWidth
	}
	r := Report{Match: m}
	if c, ok := s.At(m.Start - 1); ok {
		r.Before = &c
	}
	if c, ok := s.At(m.End + 1); ok {
		r.After = &c
	}
	r.Context = s.Slice(m.Start-width, m.End+width+1)
	return r
}

// Describe renders character with its formatting.
func Describe(c *style.Char) string {
	if c == nil {
		return notFound
	}
	return c.Quoted() + " -> " + c.Style.Describe()
}

// Lines renders report as human readable lines.
func (r Report) Lines() []string {
	return []string{
		"Before: " + Describe(r.Before),
		"After:  " + Describe(r.After),
		"Context: ..." + r.Context + "...",
	}
}

// String implements fmt.Stringer.
func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// WriteTo writes report lines to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range r.Lines() {
		n, err := fmt.Fprintln(w, l)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
