// Package rtf turns control-word annotated text (RTF) into style stream with
// a single forward pass. There is no document tree: formatting state is
// carried linearly across the whole input.
package rtf

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"stylecheck/style"
)

// Decode converts raw document bytes to text. Input which is not valid UTF-8
// is treated as ISO-8859-1, so some text is always produced for well formed
// byte input.
func Decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("unable to decode RTF as ISO-8859-1: %w", err)
	}
	return string(out), nil
}

// Options changes scanner behavior.
type Options struct {
	// ScopedGroups restores formatting state at the end of a group, when not
	// set changes made inside of a group persist past its end.
	ScopedGroups bool
}

// Stats describes what scanner has seen, it is logged for troubleshooting.
type Stats struct {
	ControlWords int
	Ignored      int
	Groups       int
	Emitted      int
	Dropped      int
}

// Scanner is a control-word state machine.
type Scanner struct {
	opts Options
	log  *zap.Logger
}

// NewScanner creates scanner. Nil logger is allowed.
func NewScanner(opts Options, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{opts: opts, log: log.Named("rtf")}
}

type flags struct {
	bold, italic, underline bool
}

func (f flags) attributes() style.Attributes {
	// color tables are not interpreted
	return style.Attributes{Bold: f.bold, Italic: f.italic, Underline: f.underline, Color: style.DefaultColor}
}

// Scan runs state machine over decoded document text.
func (s *Scanner) Scan(text string) *style.Stream {
	in := []rune(text)
	out := &style.Stream{}

	var (
		cur   flags
		saved []flags
		stats Stats
	)

	// off reports whether toggle argument at position j switches flag off
	off := func(j int) bool {
		return j < len(in) && (in[j] == '0' || in[j] == ' ')
	}

	for i := 0; i < len(in); i++ {
		switch r := in[i]; {
		case r == '\\':
			i++
			if i >= len(in) {
				break
			}
			stats.ControlWords++
			switch {
			case in[i] == 'b':
				cur.bold = !off(i + 1)
			case in[i] == 'i':
				cur.italic = !off(i + 1)
			case in[i] == 'u' && i+1 < len(in) && in[i+1] == 'l':
				cur.underline = !off(i + 2)
			default:
				stats.Ignored++
			}
			// control word extends to the next delimiter which is consumed with it
			for i < len(in) && in[i] != ' ' && in[i] != '\n' {
				i++
			}
		case r == '{':
			stats.Groups++
			if s.opts.ScopedGroups {
				saved = append(saved, cur)
			}
		case r == '}':
			if s.opts.ScopedGroups && len(saved) > 0 {
				cur, saved = saved[len(saved)-1], saved[:len(saved)-1]
			}
		case unicode.IsPrint(r) || unicode.IsSpace(r):
			out.Append(r, cur.attributes())
			stats.Emitted++
		default:
			stats.Dropped++
		}
	}

	s.log.Debug("RTF scanned",
		zap.Int("control_words", stats.ControlWords),
		zap.Int("ignored", stats.Ignored),
		zap.Int("groups", stats.Groups),
		zap.Int("emitted", stats.Emitted),
		zap.Int("dropped", stats.Dropped),
		zap.Bool("scoped", s.opts.ScopedGroups))
	return out
}

// ScanBytes decodes data and scans it.
func (s *Scanner) ScanBytes(data []byte) (*style.Stream, error) {
	text, err := Decode(data)
	if err != nil {
		return &style.Stream{}, err
	}
	return s.Scan(text), nil
}
