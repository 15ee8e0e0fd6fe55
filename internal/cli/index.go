package cli

import (
	"context"

	"github.com/matzehuels/reqcheck/pkg/check"
	"github.com/matzehuels/reqcheck/pkg/registry/pypi"
)

// pypiIndex adapts the PyPI client to the checker's Index interface.
type pypiIndex struct {
	client  *pypi.Client
	refresh bool
}

func (x *pypiIndex) Project(ctx context.Context, name string) (check.ProjectData, error) {
	p, err := x.client.Project(ctx, name, x.refresh)
	if err != nil {
		return check.ProjectData{}, err
	}
	return check.ProjectData{
		LatestVersion: p.LatestVersion(),
		HasReleases:   p.HasReleases(),
	}, nil
}

func (x *pypiIndex) SupportedPythons(ctx context.Context, name, version string) ([]string, error) {
	rel, err := x.client.Release(ctx, name, version, x.refresh)
	if err != nil {
		return nil, err
	}
	return pypi.SupportedPythons(rel.Info.Classifiers), nil
}

var _ check.Index = (*pypiIndex)(nil)
