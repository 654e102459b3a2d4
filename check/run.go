// Package check implements the command which reports formatting around
// phrases found in documents.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"stylecheck/document"
	"stylecheck/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("check")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	var phrases []string
	for _, p := range cmd.Args().Slice()[1:] {
		if p = strings.TrimSpace(p); len(p) > 0 {
			phrases = append(phrases, p)
		}
	}
	if len(phrases) == 0 {
		return errors.New("no search phrase has been specified")
	}

	opts := options{
		width:  env.Cfg.Check.ContextWidth,
		sample: env.Cfg.Check.SampleLength,
	}
	if cmd.IsSet("context") {
		if opts.width = cmd.Int("context"); opts.width < 0 {
			log.Warn("Negative context width requested, using configured value", zap.Int("requested", opts.width))
			opts.width = env.Cfg.Check.ContextWidth
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.Strings("phrases", phrases))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, phrases, opts, log)
}

type options struct {
	width  int
	sample int
}

// process checks single file or every supported file under directory.
func process(ctx context.Context, src string, phrases []string, opts options, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if !fi.IsDir() {
		return processFile(ctx, src, filepath.Base(src), phrases, opts, log)
	}

	files, err := collect(ctx, src, log)
	if err != nil {
		return fmt.Errorf("unable to process directory: %w", err)
	}
	if len(files) == 0 {
		log.Debug("Nothing to process", zap.String("dir", src))
		return nil
	}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processFile(ctx, filepath.Join(src, rel), rel, phrases, opts, log); err != nil {
			// directory processing continues with the next file
			log.Error("Unable to process file", zap.String("file", rel), zap.Error(err))
		}
	}
	return nil
}

// collect returns paths relative to dir of all files with supported
// extensions in natural order.
func collect(ctx context.Context, dir string, log *zap.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if document.FormatFromPath(path) == document.FormatUnsupported {
			log.Debug("Skipping file, unsupported format", zap.String("file", path))
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

// processFile loads document and checks every phrase against it. name is
// used for output and debug report entries.
func processFile(ctx context.Context, path, name string, phrases []string, opts options, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	loader := &document.Loader{Cfg: env.Cfg.Check, Log: log}
	doc, err := loader.Load(ctx, path)
	if err != nil {
		fmt.Fprintf(env.Out, "Failed to read file %s: %v\n", name, err)
		return err
	}

	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("streams/%s-%s.txt", slug.Make(name), doc.ID), []byte(doc.Stream.String()))
	}

	w := &printer{out: env.Out}
	w.loaded(name, doc.Stream, opts.sample)
	for _, p := range phrases {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.phrase(doc.Stream, p, opts.width)
	}
	return w.err
}
