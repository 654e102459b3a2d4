// Package markdown renders Markdown sources into HTML trees suitable for the
// markup resolver.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

var md = goldmark.New(
	// strikethrough and task lists would consume "~~" and "[ ]" markers,
	// those stay literal text
	goldmark.WithExtensions(
		extension.Table,
		extension.Linkify,
		extension.Footnote,
		extension.DefinitionList,
	),
	goldmark.WithParserOptions(parser.WithAttribute()),
	// raw HTML inside markdown carries formatting too
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// ToHTML converts Markdown source to HTML fragment.
func ToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("unable to convert markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Tree converts Markdown source and parses result as a complete HTML
// document.
func Tree(src []byte) (*html.Node, error) {
	frag, err := ToHTML(src)
	if err != nil {
		return nil, err
	}

	var doc bytes.Buffer
	doc.Grow(len(frag) + 64)
	doc.WriteString("<html><body>")
	doc.Write(frag)
	doc.WriteString("</body></html>")

	root, err := html.Parse(&doc)
	if err != nil {
		return nil, fmt.Errorf("unable to parse rendered markdown: %w", err)
	}
	return root, nil
}
