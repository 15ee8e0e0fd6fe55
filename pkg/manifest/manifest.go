// Package manifest parses dependency-pinning manifests (requirements files).
//
// A manifest is newline-delimited text where each line is blank, a comment,
// a VCS source reference, or a pin of the form "name==version". Only pins
// survive parsing; everything else is skipped or, for unpinned entries,
// reported through the warning sink or a hard error depending on mode.
package manifest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

// pinDelimiter separates the package name from its exact version.
const pinDelimiter = "=="

// ignoredPrefixes marks lines that never contribute a pin: comments and
// VCS source references.
var ignoredPrefixes = []string{"#", "git+", "hg+", "svn+", "bzr+"}

// Entry is one pinned dependency.
type Entry struct {
	Name    string
	Version string
}

// Options control parsing behavior.
type Options struct {
	// Strict aborts the whole parse on the first unpinned line.
	Strict bool

	// Warn receives lenient-mode diagnostics for unpinned lines.
	// Nil discards them.
	Warn func(format string, args ...any)
}

// Parse reads a manifest line stream and returns the pinned entries in
// order of first appearance. If a name repeats, the last version wins but
// the entry keeps its original position (mapping overwrite semantics).
//
// In strict mode an unpinned line returns an UNPINNED_DEPENDENCY error and
// no entries; in lenient mode it is reported via opts.Warn and skipped.
func Parse(r io.Reader, opts Options) ([]Entry, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	var entries []Entry
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || skipLine(line) {
			continue
		}

		if !strings.Contains(line, pinDelimiter) {
			if opts.Strict {
				return nil, errors.New(errors.ErrCodeUnpinned, "%s does not have a valid version number", line)
			}
			warn("%s does not have a valid version number", line)
			continue
		}

		name, version, _ := strings.Cut(line, pinDelimiter)
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)

		if i, seen := index[name]; seen {
			entries[i].Version = version
			continue
		}
		index[name] = len(entries)
		entries = append(entries, Entry{Name: name, Version: version})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ParseFile opens and parses a manifest file.
func ParseFile(path string, opts Options) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts)
}

func skipLine(line string) bool {
	for _, prefix := range ignoredPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
