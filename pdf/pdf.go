// Package pdf turns positioned glyphs of PDF pages into style streams. Style
// is guessed from font names, PDF carries no notion of underline or color in
// text runs.
package pdf

import (
	"strings"
	"unicode"

	"stylecheck/style"
)

// Glyph is a single positioned piece of text, usually one character.
type Glyph struct {
	Text     string
	FontName string
	Size     float64
}

// Page is a list of glyphs in content stream order.
type Page struct {
	Glyphs []Glyph
}

// ClassifyFont guesses weight and slant from font name.
func ClassifyFont(name string) (bold, italic bool) {
	n := strings.ToLower(name)
	bold = strings.Contains(n, "bold") || strings.Contains(n, "black")
	italic = strings.Contains(n, "italic") || strings.Contains(n, "oblique")
	return bold, italic
}

// Attributes returns style of the glyph.
func (g Glyph) Attributes() style.Attributes {
	bold, italic := ClassifyFont(g.FontName)
	return style.Attributes{Bold: bold, Italic: italic, Color: style.DefaultColor}.WithSize(g.Size)
}

// Flatten emits visible characters and plain spaces of all glyphs. When
// pageBreaks is set and there is more than one page, every page, empty ones
// included, is followed by default styled line feed.
func Flatten(pages []Page, pageBreaks bool) *style.Stream {
	s := &style.Stream{}
	breaks := pageBreaks && len(pages) > 1
	for _, p := range pages {
		for _, g := range p.Glyphs {
			a := g.Attributes()
			for _, r := range g.Text {
				if r == ' ' || !unicode.IsSpace(r) {
					s.Append(r, a)
				}
			}
		}
		if breaks {
			s.Append('\n', style.Default())
		}
	}
	return s
}
