// Package check implements the compatibility verdict logic.
//
// For every pinned package it asks the index for the pinned release's
// declared interpreter versions and decides one of four verdicts:
// compatible, incompatible, support-unspecified, or not-available.
// When the pinned release doesn't support the target, the newest release
// is consulted for an upgrade hint.
//
// The index is abstracted behind the Index interface so tests inject a
// fake instead of hitting the network.
package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/reqcheck/pkg/cache"
	rerrors "github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/manifest"
	"github.com/matzehuels/reqcheck/pkg/observability"
)

// ProjectData is the slice of project metadata the checker needs.
type ProjectData struct {
	LatestVersion string
	HasReleases   bool
}

// Index is the package-index lookup surface.
//
// SupportedPythons returns the interpreter versions a specific release
// declares via classifiers; a nil slice means support is undeclared.
// Both methods return cache.ErrNotFound (wrapped) for unknown packages
// or versions.
type Index interface {
	Project(ctx context.Context, name string) (ProjectData, error)
	SupportedPythons(ctx context.Context, name, version string) ([]string, error)
}

// Status classifies the verdict for one package.
type Status int

const (
	// StatusCompatible: the pinned release declares the target (or its major).
	StatusCompatible Status = iota
	// StatusIncompatible: classifiers are present but the target is absent.
	StatusIncompatible
	// StatusUnspecified: the pinned release declares no interpreter support.
	StatusUnspecified
	// StatusNotAvailable: the package has no releases on the index.
	StatusNotAvailable
)

// String returns the verdict name used in logs and hook events.
func (s Status) String() string {
	switch s {
	case StatusCompatible:
		return "compatible"
	case StatusIncompatible:
		return "incompatible"
	case StatusUnspecified:
		return "unspecified"
	case StatusNotAvailable:
		return "not-available"
	default:
		return "unknown"
	}
}

// Result is the verdict for one pinned package.
type Result struct {
	Name      string
	Version   string
	Status    Status
	Supported []string // declared versions of the pinned release (may be empty)
	UpgradeTo string   // newest version adding target support, if any
}

// Summary renders the human-readable verdict line for the given target.
// The wording is shared between lenient output and strict-mode errors.
func (r Result) Summary(target Target) string {
	switch r.Status {
	case StatusCompatible:
		return fmt.Sprintf("%s==%s compatible with Python %s", r.Name, r.Version, target.Version)
	case StatusIncompatible:
		msg := fmt.Sprintf("%s==%s not compatible with Python %s", r.Name, r.Version, target.Version)
		if r.UpgradeTo != "" {
			msg += fmt.Sprintf(" - update to v%s for support", r.UpgradeTo)
		}
		return msg
	case StatusUnspecified:
		msg := fmt.Sprintf("%s==%s Python support not specified", r.Name, r.Version)
		if r.UpgradeTo != "" {
			msg += fmt.Sprintf(" - update to v%s for explicit support", r.UpgradeTo)
		}
		return msg
	case StatusNotAvailable:
		return fmt.Sprintf("%s==%s not available on the index", r.Name, r.Version)
	default:
		return fmt.Sprintf("%s==%s unknown verdict", r.Name, r.Version)
	}
}

// strictErr maps a failing verdict to its structured error in strict mode.
func (r Result) strictErr(target Target) error {
	switch r.Status {
	case StatusIncompatible:
		return rerrors.New(rerrors.ErrCodeIncompatible, "%s", r.Summary(target))
	case StatusUnspecified:
		return rerrors.New(rerrors.ErrCodeUnspecified, "%s", r.Summary(target))
	case StatusNotAvailable:
		return rerrors.New(rerrors.ErrCodePackageNotFound, "%s", r.Summary(target))
	default:
		return nil
	}
}

// Checker runs compatibility checks against an Index.
type Checker struct {
	Index  Index
	Strict bool // abort on the first failing verdict
}

// CheckAll checks every entry in order, strictly sequentially.
//
// In lenient mode the returned slice holds one Result per entry. In strict
// mode the first failing verdict stops the run: the results so far are
// returned together with the structured error. Transport failures are not
// downgraded to verdicts in either mode; they propagate as-is.
func (c *Checker) CheckAll(ctx context.Context, entries []manifest.Entry, target Target) ([]Result, error) {
	results := make([]Result, 0, len(entries))

	for _, e := range entries {
		observability.Check().OnPackageStart(ctx, e.Name, e.Version)
		start := time.Now()

		res, err := c.checkOne(ctx, e, target)
		if err != nil {
			return results, err
		}

		observability.Check().OnPackageDone(ctx, e.Name, e.Version, res.Status.String(), time.Since(start))
		results = append(results, res)

		if c.Strict {
			if err := res.strictErr(target); err != nil {
				return results, err
			}
		}
	}
	return results, nil
}

func (c *Checker) checkOne(ctx context.Context, e manifest.Entry, target Target) (Result, error) {
	res := Result{Name: e.Name, Version: e.Version}

	proj, err := c.Index.Project(ctx, e.Name)
	if errors.Is(err, cache.ErrNotFound) {
		res.Status = StatusNotAvailable
		return res, nil
	}
	if err != nil {
		return res, err
	}
	if !proj.HasReleases {
		res.Status = StatusNotAvailable
		return res, nil
	}

	supported, err := c.releaseSupport(ctx, e.Name, e.Version)
	if err != nil {
		return res, err
	}
	res.Supported = supported

	if target.Matches(supported) {
		res.Status = StatusCompatible
		return res, nil
	}

	// The pin doesn't declare the target; see whether the newest release does.
	latestSupported, err := c.releaseSupport(ctx, e.Name, proj.LatestVersion)
	if err != nil {
		return res, err
	}
	if target.Contains(latestSupported) {
		res.UpgradeTo = proj.LatestVersion
	}

	if len(supported) > 0 {
		res.Status = StatusIncompatible
	} else {
		res.Status = StatusUnspecified
	}
	return res, nil
}

// releaseSupport fetches declared interpreter versions for one release.
// A version unknown to the index counts as "no declared support" rather
// than a failure; the pinned version may simply predate the JSON API or
// have been yanked.
func (c *Checker) releaseSupport(ctx context.Context, name, version string) ([]string, error) {
	supported, err := c.Index.SupportedPythons(ctx, name, version)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	return supported, err
}
