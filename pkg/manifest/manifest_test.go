package manifest

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

func TestParse_Empty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}

func TestParse_OnlyComments(t *testing.T) {
	input := "# build deps\n\n# runtime deps\n"
	entries, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}

func TestParse_MixedCommentsAndPins(t *testing.T) {
	input := `# web framework
flask==1.1.0

# http client
requests==2.31.0
`
	entries, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Entry{
		{Name: "flask", Version: "1.1.0"},
		{Name: "requests", Version: "2.31.0"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %v, want %v", entries, want)
	}
}

func TestParse_VCSReferencesSkipped(t *testing.T) {
	input := `git+https://github.com/pallets/flask.git
flask==1.1.0
hg+https://example.org/repo
svn+https://example.org/trunk
bzr+lp:somebranch
requests==2.31.0
`
	entries, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v, want 2 pins", entries)
	}
	for _, e := range entries {
		if strings.Contains(e.Name, "+") {
			t.Errorf("VCS reference leaked into entries: %v", e)
		}
	}
}

func TestParse_WhitespaceTrimmed(t *testing.T) {
	entries, err := Parse(strings.NewReader("  flask == 1.1.0  \n"), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Entry{{Name: "flask", Version: "1.1.0"}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %v, want %v", entries, want)
	}
}

func TestParse_DuplicateLastWins(t *testing.T) {
	input := "flask==1.0.0\nrequests==2.31.0\nflask==1.1.0\n"
	entries, err := Parse(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Entry{
		{Name: "flask", Version: "1.1.0"},
		{Name: "requests", Version: "2.31.0"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %v, want %v", entries, want)
	}
}

func TestParse_UnpinnedLenient(t *testing.T) {
	var warnings []string
	opts := Options{
		Warn: func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		},
	}

	entries, err := Parse(strings.NewReader("flask\nrequests==2.31.0\n"), opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "requests" {
		t.Errorf("entries = %v, want only requests", entries)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "flask") {
		t.Errorf("warnings = %v, want one about flask", warnings)
	}
}

func TestParse_UnpinnedStrict(t *testing.T) {
	entries, err := Parse(strings.NewReader("requests==2.31.0\nflask\n"), Options{Strict: true})
	if err == nil {
		t.Fatal("expected error for unpinned line in strict mode")
	}
	if !errors.Is(err, errors.ErrCodeUnpinned) {
		t.Errorf("err = %v, want UNPINNED_DEPENDENCY code", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil on strict failure", entries)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "requirements.txt"), Options{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND code", err)
	}
}
