package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	fixzip "github.com/hidez8891/zip"
	"github.com/maruel/natural"

	"stylecheck/misc"
)

const manifestName = "MANIFEST"

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, created: time.Now(), entries: make(map[string]entry), versions: make(map[string]int)}, nil
}

// entry is either a file on disk, archived when report is closed, or data
// kept in memory.
type entry struct {
	source string
	data   []byte
	stamp  time.Time
}

func (e entry) describe() string {
	if len(e.source) > 0 {
		return e.source
	}
	return fmt.Sprintf("<%d bytes>", len(e.data))
}

// Report accumulates log files, effective configuration and style stream
// dumps which are archived together when program ends.
// NOTE: presently not to be used concurrently!
type Report struct {
	file     *os.File
	created  time.Time
	entries  map[string]entry
	versions map[string]int
}

// Close writes the archive. Nil report is valid and means reporting was
// not requested.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.write(r.file)
}

// Name returns absolute name of report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file to be archived under name. Files are read when
// report is closed so logs are complete.
func (r *Report) Store(name, source string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	if old, exists := r.entries[name]; exists && old.source != source {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.source, source))
	}
	r.entries[name] = entry{source: source}
}

// StoreData keeps data to be archived under name. The same document may be
// checked more than once during a run, repeated names get numbered.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.entries[r.unique(name)] = entry{data: data, stamp: time.Now()}
}

// unique turns "dir/a.txt" into "dir/a-1.txt", "dir/a-2.txt"... when name
// is already taken.
func (r *Report) unique(name string) string {
	if _, exists := r.entries[name]; !exists {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for {
		r.versions[name]++
		candidate := fmt.Sprintf("%s-%d%s", stem, r.versions[name], ext)
		if _, exists := r.entries[candidate]; !exists {
			return candidate
		}
	}
}

// names returns entry names in natural order.
func (r *Report) names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// write produces archive with manifest first followed by entries in the
// manifest order. Stored files which are absent or not regular are skipped.
func (r *Report) write(w io.Writer) error {
	arc := fixzip.NewWriter(w)

	names := r.names()
	var manifest bytes.Buffer
	fmt.Fprintf(&manifest, "%s %s (%s) report, created %s\n", misc.GetAppName(), misc.GetVersion(), misc.GetGitHash(), r.created.UTC().Format(time.RFC3339))
	for _, name := range names {
		fmt.Fprintf(&manifest, "%s\t%s\n", name, r.entries[name].describe())
	}
	if err := addEntry(arc, manifestName, time.Now(), &manifest); err != nil {
		return err
	}

	for _, name := range names {
		if err := r.archive(arc, name, r.entries[name]); err != nil {
			return fmt.Errorf("unable to archive %s: %w", name, err)
		}
	}
	return arc.Close()
}

func (r *Report) archive(arc *fixzip.Writer, name string, e entry) error {
	if len(e.source) == 0 {
		return addEntry(arc, name, e.stamp, bytes.NewReader(e.data))
	}
	info, err := os.Stat(e.source)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(e.source)
	if err != nil {
		return err
	}
	defer f.Close()
	return addEntry(arc, name, info.ModTime(), f)
}

func addEntry(arc *fixzip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&fixzip.FileHeader{Name: name, Method: fixzip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
