// Package docx extracts directly formatted runs from word processing
// documents and flattens them into style streams.
package docx

import (
	"stylecheck/style"
)

// Run is a span of text sharing direct formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// Color is CSS-like color, empty means default.
	Color string
}

// Attributes returns style of the run.
func (r Run) Attributes() style.Attributes {
	a := style.Attributes{Bold: r.Bold, Italic: r.Italic, Underline: r.Underline, Color: r.Color}
	if a.Color == "" {
		a.Color = style.DefaultColor
	}
	return a
}

// Paragraph is an ordered list of runs.
type Paragraph struct {
	Runs []Run
}

// Text returns paragraph text without formatting.
func (p Paragraph) Text() string {
	var n int
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// Flatten emits every character of every run followed by a default styled
// line feed after each paragraph.
func Flatten(paras []Paragraph) *style.Stream {
	s := &style.Stream{}
	for _, p := range paras {
		for _, r := range p.Runs {
			s.AppendString(r.Text, r.Attributes())
		}
		s.Append('\n', style.Default())
	}
	return s
}
