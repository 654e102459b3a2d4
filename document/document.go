// Package document loads files of any supported format into style streams.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylecheck/config"
	"stylecheck/docx"
	"stylecheck/markdown"
	"stylecheck/markup"
	"stylecheck/pdf"
	"stylecheck/rtf"
	"stylecheck/style"
)

var (
	// ErrUnsupportedFormat is returned for files with unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrDecodeFailure is returned when document container cannot be read
	// at all.
	ErrDecodeFailure = errors.New("unable to decode document")
)

// Loaded is a flattened document.
type Loaded struct {
	ID     uuid.UUID
	Path   string
	Format Format
	Stream *style.Stream
}

// Loader reads documents according to configuration.
type Loader struct {
	Cfg config.CheckConfig
	Log *zap.Logger
}

// Load reads file at path and flattens it. Only failure to read the file
// or its container is reported, problems inside of the document are logged
// and absorbed.
func (l *Loader) Load(ctx context.Context, path string) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := FormatFromPath(path)
	if format == FormatUnsupported {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate document ID: %w", err)
	}

	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("id", id), zap.String("file", path), zap.Stringer("format", format))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	if sniffed, bad := mismatch(format, data); bad {
		log.Warn("Content does not look like its extension suggests", zap.Stringer("detected", sniffed))
	}

	s, err := l.decode(format, path, data, log)
	if err != nil {
		return nil, err
	}
	log.Debug("Document loaded", zap.Int("characters", s.Len()))

	return &Loaded{ID: id, Path: path, Format: format, Stream: s}, nil
}

func (l *Loader) decode(format Format, path string, data []byte, log *zap.Logger) (*style.Stream, error) {
	switch format {
	case FormatHTML:
		doc, err := markup.Parse(bytes.NewReader(data), "")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return l.resolver(log).ResolveDocument(doc), nil

	case FormatMarkdown:
		doc, err := markdown.Tree(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return l.resolver(log).ResolveDocument(doc), nil

	case FormatDOCX:
		paras, err := docx.Decode(bytes.NewReader(data), int64(len(data)), log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return docx.Flatten(paras), nil

	case FormatRTF:
		s, err := rtf.NewScanner(rtf.Options{ScopedGroups: l.Cfg.RTF.ScopedGroups}, log).ScanBytes(data)
		if err != nil {
			log.Warn("Unable to decode RTF text, ignoring document content", zap.Error(err))
		}
		return s, nil

	case FormatPDF:
		pages, err := pdf.Decode(path, log)
		if err != nil {
			log.Warn("Problems reading PDF, some content may be missing", zap.Error(err))
		}
		return pdf.Flatten(pages, l.Cfg.PDF.PageBreaks), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func (l *Loader) resolver(log *zap.Logger) *markup.Resolver {
	return markup.NewResolver(markup.Options{
		Parallel: l.Cfg.Markup.Parallel,
		Workers:  l.Cfg.Markup.Workers,
	}, log)
}
