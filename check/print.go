package check

import (
	"fmt"
	"io"
	"strings"

	"stylecheck/locate"
	"stylecheck/report"
	"stylecheck/style"
)

var separator = strings.Repeat("=", 40)

// printer writes results remembering the first error.
type printer struct {
	out io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, format, args...)
}

func (p *printer) loaded(name string, s *style.Stream, sample int) {
	p.printf("File: %s\n", name)
	p.printf("Loaded %d characters from file\n", s.Len())
	text := s.Slice(0, sample)
	if s.Len() > sample {
		text += "..."
	}
	p.printf("Sample: %s\n", text)
}

func (p *printer) phrase(s *style.Stream, phrase string, width int) {
	m, ok := locate.Find(s.Text(), phrase)
	if !ok {
		p.printf("'%s' not found in the text\n", phrase)
		return
	}
	if m.Fallback {
		p.printf("Found '%s' at position %d-%d (by first and last word)\n", phrase, m.Start, m.End)
	} else {
		p.printf("Found '%s' at position %d-%d\n", phrase, m.Start, m.End)
	}
	p.printf("\nResults:\n")
	for _, l := range report.Build(s, m, width).Lines() {
		p.printf("%s\n", l)
	}
	p.printf("%s\n", separator)
}
