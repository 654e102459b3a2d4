// Package debug renders indented, human readable dumps of internal
// structures for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented lines.
type TreeWriter struct {
	sb    strings.Builder
	lines int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Lines returns number of lines written so far.
func (tw *TreeWriter) Lines() int {
	return tw.lines
}

func (tw *TreeWriter) pad(depth int) {
	tw.sb.WriteString(strings.Repeat(indent, max(depth, 0)))
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
	tw.lines++
}

// TextBlock writes labeled text quoted so control characters stay visible
// and the dump keeps one item per line. Empty text is written as is.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	if len(value) > 0 {
		tw.sb.WriteString(strconv.Quote(value))
	}
	tw.sb.WriteByte('\n')
	tw.lines++
}
