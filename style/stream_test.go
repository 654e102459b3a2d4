package style

import (
	"strings"
	"testing"
)

func TestStreamAlignment(t *testing.T) {
	s := &Stream{}
	s.AppendString("Hé", Default())
	s.AppendString("llo 世界", Attributes{Bold: true})
	s.Append('\n', Default())

	text := []rune(s.Text())
	if len(text) != s.Len() {
		t.Fatalf("text has %d runes, stream has %d characters", len(text), s.Len())
	}
	for i, r := range text {
		c, ok := s.At(i)
		if !ok || c.Rune != r {
			t.Fatalf("position %d: text %q, stream %q", i, r, c.Rune)
		}
	}
	if c, _ := s.At(2); !c.Style.Bold {
		t.Error("character 2 must be bold")
	}
}

func TestStreamAt(t *testing.T) {
	s := FromString("ab", Default())
	for _, i := range []int{-1, 2, 100} {
		if _, ok := s.At(i); ok {
			t.Errorf("At(%d) must be out of bounds", i)
		}
	}
	var nilStream *Stream
	if _, ok := nilStream.At(0); ok || nilStream.Len() != 0 || nilStream.Text() != "" {
		t.Error("nil stream must behave as empty")
	}
}

func TestStreamSlice(t *testing.T) {
	s := FromString("Hello World", Default())
	tests := []struct {
		from, to int
		want     string
	}{
		{0, 5, "Hello"},
		{-10, 3, "Hel"},
		{6, 100, "World"},
		{8, 3, ""},
	}
	for _, tt := range tests {
		if got := s.Slice(tt.from, tt.to); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStreamConcatAndEqual(t *testing.T) {
	a := FromString("Hello ", Default())
	b := FromString("World", Attributes{Bold: true})
	joined := (&Stream{}).Concat(a, nil, b)

	if joined.Text() != "Hello World" {
		t.Fatalf("Concat() text = %q", joined.Text())
	}
	again := (&Stream{}).Concat(FromString("Hello ", Default()), FromString("World", Attributes{Bold: true}))
	if !joined.Equal(again) {
		t.Error("identical streams must be equal")
	}
	if joined.Equal(FromString("Hello World", Default())) {
		t.Error("streams with different styles must differ")
	}
	// Chars returns a copy
	chars := joined.Chars()
	chars[0].Rune = 'J'
	if joined.Text() != "Hello World" {
		t.Error("Chars() must not expose internal storage")
	}
}

func TestStreamRuns(t *testing.T) {
	s := &Stream{}
	s.AppendString("Hello ", Default())
	s.AppendString("World", Attributes{Bold: true})
	s.Append('\n', Default())

	runs := s.Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
	if runs[1].Text != "World" || runs[1].Position != 6 || runs[1].Length != 5 || !runs[1].Style.Bold {
		t.Errorf("unexpected bold run %+v", runs[1])
	}
	if len((&Stream{}).Runs()) != 0 {
		t.Error("empty stream has no runs")
	}

	dump := s.String()
	if !strings.Contains(dump, "Run[6:11] BOLD") || !strings.Contains(dump, `text: "World"`) {
		t.Errorf("unexpected dump:\n%s", dump)
	}
}

func TestCharQuoted(t *testing.T) {
	if got := (Char{Rune: '\n'}).Quoted(); got != `'\n'` {
		t.Errorf("Quoted() = %s", got)
	}
	if got := (Char{Rune: 'a'}).Quoted(); got != `'a'` {
		t.Errorf("Quoted() = %s", got)
	}
}
