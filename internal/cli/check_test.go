package cli

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"missing default file", errors.New(errors.ErrCodeFileNotFound, "default file requirements.txt not found"), 2},
		{"invalid version", errors.New(errors.ErrCodeInvalidVersion, "python argument invalid"), 2},
		{"strict incompatible", errors.New(errors.ErrCodeIncompatible, "flask==1.0 not compatible"), 1},
		{"strict unpinned", errors.New(errors.ErrCodeUnpinned, "flask has no version"), 1},
		{"plain error", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveSources_ExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(path, []byte("flask==1.1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := resolveSources([]string{path})
	if err != nil {
		t.Fatalf("resolveSources: %v", err)
	}
	if len(sources) != 1 || sources[0].name != path {
		t.Errorf("sources = %+v", sources)
	}

	r, err := sources[0].open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r.Close()
}

func TestResolveSources_MissingExplicitFileOpens(t *testing.T) {
	sources, err := resolveSources([]string{filepath.Join(t.TempDir(), "nope.txt")})
	if err != nil {
		t.Fatalf("resolveSources: %v", err)
	}

	// The failure surfaces when the source is opened, with a code the
	// exit mapping understands.
	_, err = sources[0].open()
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("open err = %v, want FILE_NOT_FOUND code", err)
	}
}

func TestParseSource_Lenient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	content := "# deps\nflask==1.1.0\nunpinned-package\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	src := source{name: path, open: func() (io.ReadCloser, error) { return openManifest(path) }}

	entries, err := c.parseSource(src, false)
	if err != nil {
		t.Fatalf("parseSource: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "flask" {
		t.Errorf("entries = %v, want only flask", entries)
	}
}

func TestParseSource_Strict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(path, []byte("unpinned-package\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	src := source{name: path, open: func() (io.ReadCloser, error) { return openManifest(path) }}

	if _, err := c.parseSource(src, true); !errors.Is(err, errors.ErrCodeUnpinned) {
		t.Errorf("err = %v, want UNPINNED_DEPENDENCY code", err)
	}
}
