package document

import (
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// sniffLen is enough for every signature filetype knows about.
const sniffLen = 262

// Sniff guesses format from the leading bytes of content. Text based formats
// carry no signature and are reported as FormatUnsupported, which means
// "unknown" here.
func Sniff(head []byte) Format {
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return FormatUnsupported
	}
	switch kind {
	case matchers.TypePdf:
		return FormatPDF
	case matchers.TypeRtf:
		return FormatRTF
	case matchers.TypeDocx, matchers.TypeZip:
		return FormatDOCX
	}
	return FormatUnsupported
}

// mismatch reports that content signature contradicts format chosen by
// extension.
func mismatch(f Format, head []byte) (Format, bool) {
	sniffed := Sniff(head)
	if sniffed == FormatUnsupported {
		// no signature, binary formats must have one
		switch f {
		case FormatDOCX, FormatPDF:
			return sniffed, len(head) > 0
		}
		return sniffed, false
	}
	return sniffed, sniffed != f
}
