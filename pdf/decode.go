package pdf

import (
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Decode extracts glyphs of every page of the file. Pages which cannot be
// read are returned empty so the result always has one entry per document
// page, their errors are combined and returned together with whatever could
// be extracted.
func Decode(path string, log *zap.Logger) (pages []Page, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("pdf")

	// reader panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			err = multierr.Append(err, fmt.Errorf("unable to read PDF (%s): %v", path, r))
		}
	}()

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF (%s): %w", path, err)
	}
	defer f.Close()

	total, read := r.NumPage(), 0
	pages = make([]Page, 0, total)
	for i := 1; i <= total; i++ {
		p, perr := readPage(r, i)
		if perr != nil {
			log.Debug("Page skipped", zap.Int("page", i), zap.Error(perr))
			err = multierr.Append(err, perr)
			p = Page{}
		} else {
			read++
		}
		pages = append(pages, p)
	}
	log.Debug("PDF decoded", zap.Int("pages", total), zap.Int("read", read))
	return pages, err
}

func readPage(r *lpdf.Reader, num int) (page Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return Page{}, fmt.Errorf("page %d: no page object", num)
	}
	for _, t := range p.Content().Text {
		page.Glyphs = append(page.Glyphs, Glyph{Text: t.S, FontName: t.Font, Size: t.FontSize})
	}
	return page, nil
}
