package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fixzip "github.com/hidez8891/zip"
)

func TestReport_Nil(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all other methods must be safe on nil too
	r.Store("x", "y")
	r.StoreData("x", []byte("y"))
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q, want empty", r.Name())
	}
	if err := (&Report{}).Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReport_Unique(t *testing.T) {
	r := &Report{entries: make(map[string]entry), versions: make(map[string]int)}
	r.StoreData("streams/a.txt", nil)
	r.StoreData("streams/a.txt", nil)
	r.StoreData("streams/a.txt", nil)
	r.StoreData("noext", nil)
	r.StoreData("noext", nil)

	for _, name := range []string{"streams/a.txt", "streams/a-1.txt", "streams/a-2.txt", "noext", "noext-1"} {
		if _, ok := r.entries[name]; !ok {
			t.Errorf("entry %q missing, have %v", name, r.names())
		}
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry), versions: make(map[string]int)}
	r.Store("final.log", "a.log")
	// same file again is fine
	r.Store("final.log", "a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic for conflicting file")
		}
	}()
	r.Store("final.log", "b.log")
}

func readArchive(t *testing.T, name string) ([]string, map[string]string) {
	t.Helper()
	zr, err := fixzip.OpenReader(name)
	if err != nil {
		t.Fatalf("report is not a zip archive: %v", err)
	}
	defer zr.Close()

	contents := make(map[string]string)
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		contents[f.Name] = string(data)
		names = append(names, f.Name)
	}
	return names, contents
}

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	logFile := filepath.Join(tmpDir, "run.log")
	r.Store("final.log", logFile)
	r.Store("absent.log", filepath.Join(tmpDir, "nope.log"))
	r.StoreData("streams/doc10.txt", []byte("ten"))
	r.StoreData("streams/doc2.txt", []byte("two"))
	r.StoreData("streams/doc2.txt", []byte("two again"))

	// stored files are read when report is closed
	if err := os.WriteFile(logFile, []byte("log line\n"), 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	names, contents := readArchive(t, conf.Destination)
	if names[0] != manifestName {
		t.Errorf("first entry = %q, want %s", names[0], manifestName)
	}
	if contents["final.log"] != "log line\n" {
		t.Errorf("final.log = %q", contents["final.log"])
	}
	if _, ok := contents["absent.log"]; ok {
		t.Error("absent file must not be archived")
	}
	if contents["streams/doc2.txt"] != "two" || contents["streams/doc2-1.txt"] != "two again" || contents["streams/doc10.txt"] != "ten" {
		t.Errorf("unexpected stream dumps: %v", contents)
	}

	// natural order: doc2 before doc10, archive follows manifest
	manifest := contents[manifestName]
	if strings.Index(manifest, "streams/doc2.txt") > strings.Index(manifest, "streams/doc10.txt") {
		t.Errorf("manifest is not in natural order:\n%s", manifest)
	}
	if !strings.Contains(manifest, "streams/doc10.txt\t<3 bytes>") {
		t.Errorf("manifest does not describe data entries:\n%s", manifest)
	}
	var pos2, pos10 int
	for i, n := range names {
		switch n {
		case "streams/doc2.txt":
			pos2 = i
		case "streams/doc10.txt":
			pos10 = i
		}
	}
	if pos2 > pos10 {
		t.Errorf("archive is not in manifest order: %v", names)
	}
}
