package debug

import (
	"testing"
)

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" || tw.Lines() != 0 {
		t.Errorf("new writer is not empty: %q, %d lines", tw.String(), tw.Lines())
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "Stream: %d characters", args: []any{5}, want: "Stream: 5 characters\n"},
		{name: "nested", depth: 2, format: "Run[%d:%d] %s", args: []any{0, 3, "BOLD"}, want: "    Run[0:3] BOLD\n"},
		{name: "negative depth", depth: -1, format: "x", want: "x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		value string
		want  string
	}{
		{name: "plain", depth: 1, value: "World", want: "  text: \"World\"\n"},
		{name: "control characters", depth: 0, value: "a\tb\n", want: "text: \"a\\tb\\n\"\n"},
		{name: "empty", depth: 0, value: "", want: "text: \n"},
		{name: "unicode", depth: 0, value: "Grüße", want: "text: \"Grüße\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, "text", tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Tree(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "Stream: %d characters", 11)
	tw.Line(1, "Run[0:6] NORMAL")
	tw.TextBlock(2, "text", "Hello ")
	tw.Line(1, "Run[6:11] BOLD")
	tw.TextBlock(2, "text", "World")

	want := "Stream: 11 characters\n" +
		"  Run[0:6] NORMAL\n" +
		"    text: \"Hello \"\n" +
		"  Run[6:11] BOLD\n" +
		"    text: \"World\"\n"
	if tw.String() != want {
		t.Errorf("String() =\n%s\nwant\n%s", tw.String(), want)
	}
	if tw.Lines() != 5 {
		t.Errorf("Lines() = %d, want 5", tw.Lines())
	}
}
