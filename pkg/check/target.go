package check

import (
	"regexp"
	"strings"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

// DefaultPythonVersion is the target used when neither the --python flag
// nor the config file specifies one.
const DefaultPythonVersion = "3.12"

// targetRE validates MAJOR.MINOR interpreter versions; major must be 2 or 3.
var targetRE = regexp.MustCompile(`^[23]\.[0-9]+$`)

// Target is the interpreter version compatibility is checked against.
type Target struct {
	Version string // e.g. "3.6"
	Major   string // e.g. "3"
}

// ParseTarget validates and splits a MAJOR.MINOR interpreter version.
// The major component is kept separately because classifiers may declare
// support with a bare major ("Programming Language :: Python :: 3"),
// which satisfies any request for that major.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if !targetRE.MatchString(s) {
		return Target{}, errors.New(errors.ErrCodeInvalidVersion,
			"python argument invalid: must be in X.Y format, where X is 2 or 3")
	}
	major, _, _ := strings.Cut(s, ".")
	return Target{Version: s, Major: major}, nil
}

// Matches reports whether the target is satisfied by the given supported
// version set. An exact entry ("3.6") or the bare major ("3") both count.
func (t Target) Matches(supported []string) bool {
	for _, v := range supported {
		if v == t.Version || v == t.Major {
			return true
		}
	}
	return false
}

// Contains reports whether the exact target version appears in supported.
// Upgrade hints use this stricter test: a bare major on the newest release
// is not enough to recommend an update.
func (t Target) Contains(supported []string) bool {
	for _, v := range supported {
		if v == t.Version {
			return true
		}
	}
	return false
}
