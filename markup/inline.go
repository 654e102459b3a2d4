package markup

import (
	"bytes"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"stylecheck/style"
)

// tagStyles maps element names to their implicit formatting.
var tagStyles = map[string]style.Overrides{
	"b":      {Bold: true},
	"strong": {Bold: true},
	"i":      {Italic: true},
	"em":     {Italic: true},
	"u":      {Underline: true},
	"ins":    {Underline: true},
	"h1":     heading,
	"h2":     heading,
	"h3":     heading,
	"h4":     heading,
	"h5":     heading,
	"h6":     heading,
	"code":   {Color: color("red")},
}

var heading = style.Overrides{Bold: true, Color: color("blue")}

func color(c string) *string {
	return &c
}

// TagOverrides returns formatting implied by element name.
func TagOverrides(tag string) style.Overrides {
	return tagStyles[strings.ToLower(tag)]
}

// Declaration is a single property of an inline style attribute. Value is
// the trimmed text following the colon as written in the attribute, Tokens
// are its lexical form.
type Declaration struct {
	Property string
	Value    string
	Tokens   []css.Token
}

// ParseDeclarations splits inline style attribute into declarations.
// Declarations which cannot be recognized are skipped.
func ParseDeclarations(attr string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(attr, ";") {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		value := strings.TrimSpace(part[colon+1:])
		if len(value) == 0 {
			continue
		}
		if d, ok := parseDeclaration(part); ok {
			d.Value = value
			decls = append(decls, d)
		}
	}
	return decls
}

// parseDeclaration recognizes single declaration with tdewolff parser.
func parseDeclaration(src string) (Declaration, bool) {
	p := css.NewParser(parse.NewInput(bytes.NewBufferString(src)), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return Declaration{}, false
		case css.DeclarationGrammar:
			values := p.Values()
			if len(values) == 0 {
				return Declaration{}, false
			}
			return Declaration{
				Property: strings.ToLower(string(data)),
				Tokens:   copyTokens(values),
			}, true
		}
	}
}

// copyTokens detaches tokens from parser buffers which are reused by Next.
func copyTokens(tokens []css.Token) []css.Token {
	res := make([]css.Token, len(tokens))
	for i, t := range tokens {
		res[i] = css.Token{TokenType: t.TokenType, Data: bytes.Clone(t.Data)}
	}
	return res
}

// InlineOverrides interprets font weight, font style, text decoration and
// color of a style attribute. Color is taken verbatim, later declarations
// win.
func InlineOverrides(attr string) style.Overrides {
	var o style.Overrides
	for _, d := range ParseDeclarations(attr) {
		switch d.Property {
		case "font-weight":
			o.Bold = o.Bold || isBoldWeight(d)
		case "font-style":
			v := strings.ToLower(d.Value)
			o.Italic = o.Italic || strings.HasPrefix(v, "italic") || strings.HasPrefix(v, "oblique")
		case "text-decoration", "text-decoration-line":
			o.Underline = o.Underline || hasIdent(d, "underline")
		case "color":
			if len(d.Value) > 0 {
				o.Color = color(d.Value)
			}
		}
	}
	return o
}

func isBoldWeight(d Declaration) bool {
	for _, t := range d.Tokens {
		switch t.TokenType {
		case css.IdentToken:
			v := strings.ToLower(string(t.Data))
			if v == "bold" || v == "bolder" {
				return true
			}
		case css.NumberToken:
			if n, err := strconv.ParseFloat(string(t.Data), 64); err == nil && n >= 600 {
				return true
			}
		}
	}
	return false
}

func hasIdent(d Declaration, ident string) bool {
	for _, t := range d.Tokens {
		if t.TokenType == css.IdentToken && strings.EqualFold(string(t.Data), ident) {
			return true
		}
	}
	return false
}
