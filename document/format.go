package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Format is a supported kind of source document.
type Format int

const (
	FormatUnsupported Format = iota
	FormatHTML
	FormatMarkdown
	FormatDOCX
	FormatRTF
	FormatPDF
)

var ErrInvalidFormat = errors.New("not a valid Format")

var formatNames = []string{"unsupported", "html", "markdown", "docx", "rtf", "pdf"}

var formatExtensions = map[string]Format{
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".docx":     FormatDOCX,
	".rtf":      FormatRTF,
	".pdf":      FormatPDF,
}

// String implements the Stringer interface.
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	return f > FormatUnsupported && int(f) < len(formatNames)
}

// ParseFormat attempts to convert a string to a Format.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(name)
	for i, fn := range formatNames {
		if fn == n {
			return Format(i), nil
		}
	}
	return FormatUnsupported, fmt.Errorf("%s is %w", name, ErrInvalidFormat)
}

// FormatNames returns names of all supported formats.
func FormatNames() []string {
	return append([]string(nil), formatNames[1:]...)
}

// MarshalText implements the text marshaller method.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements the text unmarshaller method.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FormatFromPath selects format by file name extension.
func FormatFromPath(path string) Format {
	return formatExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns file name extensions recognized for format, sorted.
func (f Format) Extensions() []string {
	var res []string
	for ext, ef := range formatExtensions {
		if ef == f {
			res = append(res, ext)
		}
	}
	sort.Sort(natural.StringSlice(res))
	return res
}
