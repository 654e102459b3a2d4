// Package markup flattens parsed HTML trees into style streams cascading
// formatting of elements down to the text they contain.
package markup

import (
	"fmt"
	"io"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"stylecheck/style"
)

// Options changes resolver behavior.
type Options struct {
	// Parallel resolves top level elements concurrently.
	Parallel bool
	// Workers limits number of concurrently resolved elements.
	Workers int
}

// Resolver walks node trees.
type Resolver struct {
	opts Options
	log  *zap.Logger
}

// NewResolver creates resolver. Nil logger is allowed.
func NewResolver(opts Options, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Resolver{opts: opts, log: log.Named("markup")}
}

// Parse reads HTML document converting it to UTF-8 first. contentType may be
// empty, in this case encoding is sniffed from the content.
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	cr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}
	doc, err := html.Parse(cr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}
	return doc, nil
}

// ResolveDocument flattens document body, or the node itself when there is
// no body element.
func (r *Resolver) ResolveDocument(doc *html.Node) *style.Stream {
	root := findBody(doc)
	if root == nil {
		root = doc
	}
	base := style.Merge(style.Default(), overrides(root))

	var s *style.Stream
	if r.opts.Parallel {
		s = r.resolveParallel(root, base)
	} else {
		s = Resolve(root, style.Default())
	}
	r.log.Debug("Markup resolved", zap.String("root", nodeName(root)), zap.Int("characters", s.Len()), zap.Bool("parallel", r.opts.Parallel))
	return s
}

// resolveParallel resolves children of root concurrently and reassembles
// them in document order.
func (r *Resolver) resolveParallel(root *html.Node, base style.Attributes) *style.Stream {
	var children []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	parts := make([]*style.Stream, len(children))
	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, c := range children {
		g.Go(func() error {
			parts[i] = resolveNode(c, base)
			return nil
		})
	}
	// resolving never fails
	_ = g.Wait()

	return (&style.Stream{}).Concat(parts...)
}

// Resolve flattens subtree rooted at n. inherited are attributes accumulated
// from ancestors of n, n's own formatting is applied on top of them.
func Resolve(n *html.Node, inherited style.Attributes) *style.Stream {
	if n == nil {
		return &style.Stream{}
	}
	return resolveNode(n, inherited)
}

func resolveNode(n *html.Node, inherited style.Attributes) *style.Stream {
	switch n.Type {
	case html.TextNode:
		return textLeaf(n.Data, inherited)
	case html.ElementNode:
		if skipped(n) {
			return &style.Stream{}
		}
		current := style.Merge(inherited, overrides(n))
		s := &style.Stream{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.Concat(resolveNode(c, current))
		}
		return s
	case html.DocumentNode:
		s := &style.Stream{}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.Concat(resolveNode(c, inherited))
		}
		return s
	default:
		// comments, doctype
		return &style.Stream{}
	}
}

// textLeaf keeps visible characters and plain spaces, other whitespace is
// layout of the source.
func textLeaf(text string, a style.Attributes) *style.Stream {
	s := &style.Stream{}
	for _, r := range text {
		if r == ' ' || !unicode.IsSpace(r) {
			s.Append(r, a)
		}
	}
	return s
}

func overrides(n *html.Node) style.Overrides {
	if n.Type != html.ElementNode {
		return style.Overrides{}
	}
	o := TagOverrides(n.Data)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			o = o.Add(InlineOverrides(a.Val))
		}
	}
	return o
}

// skipped elements never contribute text. Everything under body, scripts
// and styles included, is kept.
func skipped(n *html.Node) bool {
	return n.DataAtom == atom.Head
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func nodeName(n *html.Node) string {
	if n.Type == html.ElementNode {
		return n.Data
	}
	return "#document"
}
