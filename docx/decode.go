package docx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"stylecheck/style"
)

const mainPart = "word/document.xml"

// Decode reads body paragraphs of the package. Only runs which are direct
// children of body paragraphs are considered, tables, hyperlinks and fields
// are not.
func Decode(r io.ReaderAt, size int64, log *zap.Logger) ([]Paragraph, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("docx")

	zr, err := fixzip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open document package: %w", err)
	}

	var part *fixzip.File
	for _, f := range zr.File {
		if f.Name == mainPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("document package has no %s", mainPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", mainPart, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", mainPart, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "document" {
		return nil, fmt.Errorf("unexpected root element in %s", mainPart)
	}
	body := child(root, "body")
	if body == nil {
		log.Debug("Document has no body")
		return nil, nil
	}

	var paras []Paragraph
	for _, p := range body.ChildElements() {
		if p.Tag != "p" {
			continue
		}
		paras = append(paras, decodeParagraph(p))
	}
	log.Debug("Document decoded", zap.Int("paragraphs", len(paras)))
	return paras, nil
}

func decodeParagraph(p *etree.Element) Paragraph {
	var para Paragraph
	for _, r := range p.ChildElements() {
		if r.Tag != "r" {
			continue
		}
		run := decodeRunProps(child(r, "rPr"))
		run.Text = runText(r)
		para.Runs = append(para.Runs, run)
	}
	return para
}

func decodeRunProps(rpr *etree.Element) Run {
	var run Run
	if rpr == nil {
		return run
	}
	for _, e := range rpr.ChildElements() {
		val := attr(e, "val")
		switch e.Tag {
		case "b":
			run.Bold = toggle(val)
		case "i":
			run.Italic = toggle(val)
		case "u":
			run.Underline = val != "none" && toggle(val)
		case "color":
			run.Color = hexColor(val)
		}
	}
	return run
}

func runText(r *etree.Element) string {
	var sb strings.Builder
	for _, e := range r.ChildElements() {
		switch e.Tag {
		case "t":
			sb.WriteString(e.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// toggle interprets on/off property value, absent value means on.
func toggle(val string) bool {
	switch strings.ToLower(val) {
	case "0", "false", "off":
		return false
	}
	return true
}

// hexColor converts RRGGBB to rgb(r,g,b). auto and malformed values mean
// default color.
func hexColor(val string) string {
	if len(val) != 6 {
		return style.DefaultColor
	}
	v, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return style.DefaultColor
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", v>>16&0xff, v>>8&0xff, v&0xff)
}

// child returns first child element with local name tag regardless of
// namespace prefix.
func child(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func attr(e *etree.Element, key string) string {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
